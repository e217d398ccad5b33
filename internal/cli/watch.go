package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fxpreview/internal/config"
	"fxpreview/internal/live"
	"fxpreview/internal/logging"
	"fxpreview/internal/preview"
)

// queueSize bounds the headless loop's message queue.
const queueSize = 64

type watchOptions struct {
	width int
	diff  bool
}

func newWatchCommand() *cobra.Command {
	opts := watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Print a fresh preview whenever the file changes",
		Long: `Watch renders the document, then re-renders it after every change on
disk, debounced the same way the editor debounces typing. Markup failures
are printed in place of the tree and never stop the watch.

Use --diff to print a unified diff of each external change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkExtension(config.FromContext(cmd.Context()), args[0]); err != nil {
				return err
			}

			return runWatch(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.width, "width", "w", defaultWidth, "wrap the outline at this many columns")
	f.BoolVar(&opts.diff, "diff", false, "print a unified diff of each external change")

	return cmd
}

// runWatch drives a live session headlessly until ctx is cancelled.
func runWatch(ctx context.Context, out io.Writer, path string, opts watchOptions) error {
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	if !cfg.AutoRefresh {
		logger.Warn("auto-refresh is off; watch enables it")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := live.NewLoop(queueSize)

	session, err := live.New(live.Options{
		Debounce:    cfg.Debounce,
		Extension:   cfg.Extension,
		AutoRefresh: true,
		Logger:      logger,
		Post:        loop.Poster(ctx),
	})
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	defer session.Close()

	res, err := session.Open(path)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	p := &printer{out: out, width: opts.width, noColor: cfg.NoColor || !isTerminal(out), diff: opts.diff, logger: logger}
	p.rendered(res)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return session.Run(gctx) })
	g.Go(func() error {
		return loop.Run(gctx, session, live.Handlers{
			Rendered: p.rendered,
			Reloaded: p.reloaded,
			Conflict: p.conflict,
			Error:    p.failed,
		})
	})

	return g.Wait()
}

// printer writes headless loop outcomes. It is only called from the loop
// goroutine.
type printer struct {
	out     io.Writer
	width   int
	noColor bool
	diff    bool
	logger  *slog.Logger
}

func (p *printer) rendered(res preview.Result) {
	if res.Skipped {
		return
	}

	status := "error"
	if res.OK() {
		status = fmt.Sprintf("%d nodes", res.Tree.Root.Count())
	}

	fmt.Fprintln(p.out, faintColor(p.noColor).Sprintf("--- %s render (%s, %s)", time.Now().Format(time.TimeOnly), status, res.Elapsed.Round(time.Microsecond)))

	if err := printResult(p.out, res, p.width, p.noColor); err != nil {
		p.logger.Error("writing preview", slog.String("error", err.Error()))
	}
}

func (p *printer) reloaded(r live.Reload) {
	if p.diff {
		p.printDiff(r)
	}
}

func (p *printer) conflict(r live.Reload) {
	p.logger.Warn("external change kept out of unsaved edits", slog.String("path", r.Path))
	p.printDiff(r)
}

func (p *printer) failed(err error) {
	p.logger.Error("reload failed", slog.String("error", err.Error()))
	fmt.Fprintln(p.out, errorColor(p.noColor).Sprint(err.Error()))
}

func (p *printer) printDiff(r live.Reload) {
	text, err := unifiedDiff(r)
	if err != nil {
		p.logger.Error("building diff", slog.String("error", err.Error()))
		return
	}

	fmt.Fprint(p.out, text)
}

// unifiedDiff shows r.Previous against the incoming disk content.
func unifiedDiff(r live.Reload) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(ensureNewline(r.Previous)),
		B:        difflib.SplitLines(ensureNewline(r.Text)),
		FromFile: "buffer",
		ToFile:   r.Path,
		Context:  2,
	})
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}
