package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"fxpreview/internal/version"
)

func newVersionCommand() *cobra.Command {
	var (
		asJSON bool
		short  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show which build of fxpreview this is",
		Args:  cobra.NoArgs,
		// Needs neither config nor logging.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()

			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			case short:
				_, err := fmt.Fprintln(out, info.Version)
				return err
			default:
				_, err := fmt.Fprintln(out, info)
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the build description as JSON")
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	cmd.MarkFlagsMutuallyExclusive("json", "short")

	return cmd
}
