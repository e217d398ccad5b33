// Package cli implements the cobra command tree for fxpreview.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fxpreview/internal/config"
	"fxpreview/internal/logging"
	"fxpreview/internal/tui"
	"fxpreview/internal/version"
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command tree, runs it until it returns or the process
// is interrupted, and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errorColor(false).Sprint("Error:"), err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return 1
	}

	return 0
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	var (
		cfgFile  string
		closeLog = func() error { return nil }
	)

	cmd := &cobra.Command{
		Use:   "fxpreview [file]",
		Short: "Edit FXML-style markup with a live preview",
		Long: `fxpreview edits FXML-style view markup next to a live preview of the
element tree it describes.

The preview refreshes shortly after you stop typing and whenever the
open file changes on disk. Without a terminal, fxpreview watches the
given file and prints each new preview to standard output.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Get().Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			w, closeFn, err := logging.Sink(cfg, interactive(cmd), cmd.ErrOrStderr())
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			closeLog = closeFn
			logger := logging.SetupWithWriter(cfg, w)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("configFile", cfg.ConfigFile),
				slog.Duration("debounce", cfg.Debounce),
				slog.String("extension", cfg.Extension),
			)

			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			return runRoot(cmd, path)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .fxpreview.yaml)")
	pf.String("log-level", config.LogLevelInfo, "log level: debug, info, warn, error")
	pf.String("log-format", config.LogFormatText, "log format: text, json")
	pf.String("log-file", "", "append logs to this file (the terminal UI logs nowhere else)")
	pf.Duration("debounce", config.DefaultDebounce, "quiet period after the last edit before the preview refreshes")
	pf.String("extension", config.DefaultExtension, "recognized document extension")
	pf.Bool("auto-refresh", true, "refresh on edits and reload on external changes")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Err: err}
	})

	cmd.AddCommand(
		newVersionCommand(),
		newRenderCommand(),
		newWatchCommand(),
	)

	return cmd
}

// runRoot opens the terminal editor, or watches path headlessly when
// standard output is not a terminal.
func runRoot(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	if path != "" {
		if err := checkExtension(cfg, path); err != nil {
			return err
		}
	}

	if !interactive(cmd) {
		if path == "" {
			return &ExitError{Code: 2, Err: errors.New("a file argument is required when output is not a terminal")}
		}

		logger.Debug("output is not a terminal, watching headless", slog.String("path", path))

		return runWatch(ctx, cmd.OutOrStdout(), path, watchOptions{width: defaultWidth})
	}

	return tui.Run(ctx, tui.Options{
		Path:        path,
		Debounce:    cfg.Debounce,
		Extension:   cfg.Extension,
		AutoRefresh: cfg.AutoRefresh,
		NoColor:     cfg.NoColor,
		Logger:      logger,
	})
}

// interactive reports whether cmd is the bare root command attached to a
// terminal, the only case that hands the screen to the editor.
func interactive(cmd *cobra.Command) bool {
	return cmd == cmd.Root() && isTerminal(cmd.OutOrStdout()) && isTerminal(cmd.InOrStdin())
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
