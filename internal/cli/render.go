package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fxpreview/internal/config"
	"fxpreview/internal/document"
	"fxpreview/internal/logging"
	"fxpreview/internal/markup"
	"fxpreview/internal/preview"
	"fxpreview/internal/tui/util"
	"fxpreview/internal/tui/widgets/previewpane"
)

const defaultWidth = 80

func newRenderCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document once and print its element tree",
		Long: `Render loads the document, prints the element tree the preview pane
would show, and exits. A markup failure is printed instead of the tree
and the command exits with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], width)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", defaultWidth, "wrap the outline at this many columns")

	return cmd
}

func runRender(cmd *cobra.Command, path string, width int) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	if err := checkExtension(cfg, path); err != nil {
		return err
	}

	doc, err := document.Load(path)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	loader := markup.ForExtension(filepath.Ext(doc.Path()))
	res := preview.NewRenderer(loader, logging.FromContext(ctx)).
		Render(doc.Text(), markup.Options{BaseDir: doc.Dir()})

	if err := printResult(cmd.OutOrStdout(), res, width, cfg.NoColor); err != nil {
		return err
	}

	if res.Err != "" {
		return &ExitError{Code: 1, Err: errors.New("markup failed to load")}
	}

	return nil
}

// checkExtension accepts the configured extension and the YAML form.
func checkExtension(cfg *config.Config, path string) error {
	if document.HasExtension(path, cfg.Extension) {
		return nil
	}

	if _, ok := markup.ForExtension(filepath.Ext(path)).(markup.YAMLLoader); ok {
		return nil
	}

	return &ExitError{Code: 2, Err: fmt.Errorf("unsupported file type %q: expected %s, .yaml or .yml", filepath.Base(path), cfg.Extension)}
}

// printResult writes the outline for res, or its failure in red. Skipped
// results print nothing.
func printResult(w io.Writer, res preview.Result, width int, noColor bool) error {
	switch {
	case res.Skipped:
		return nil
	case res.Err != "":
		_, err := errorColor(noColor).Fprintln(w, res.Err)
		return err
	default:
		_, err := fmt.Fprintln(w, previewpane.View(res, width, noColor || !isTerminal(w)))
		return err
	}
}

func errorColor(noColor bool) *color.Color {
	c := color.New(color.FgRed, color.Bold)
	if util.NoColor(noColor) {
		c.DisableColor()
	}

	return c
}

func faintColor(noColor bool) *color.Color {
	c := color.New(color.Faint)
	if util.NoColor(noColor) {
		c.DisableColor()
	}

	return c
}

