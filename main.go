// fxpreview edits FXML-style view markup next to a live preview of its
// element tree.
package main

import (
	"os"

	"fxpreview/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
