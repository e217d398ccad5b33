// Package preview adapts a markup loader to the previewer: every render
// produces something displayable, either a visual tree or an error message.
package preview

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fxpreview/internal/markup"
)

// ErrorPrefix starts every error message shown in place of a tree.
const ErrorPrefix = "FXML Error: "

// Result is the outcome of one render.
type Result struct {
	// Tree is set on success.
	Tree *markup.Tree
	// Err is the display-ready failure description, set on failure.
	Err string
	// Skipped means the text was blank and the previous display stays.
	Skipped bool
	Elapsed time.Duration
}

// OK reports whether the render produced a tree.
func (r Result) OK() bool { return r.Tree != nil }

// Renderer hands document text to a markup loader.
type Renderer struct {
	loader markup.Loader
	logger *slog.Logger
}

// NewRenderer creates a renderer backed by loader.
func NewRenderer(loader markup.Loader, logger *slog.Logger) *Renderer {
	if loader == nil {
		loader = markup.XMLLoader{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Renderer{loader: loader, logger: logger}
}

// Render loads text. It never panics and never returns an error; failures
// come back as Result.Err.
func (r *Renderer) Render(text string, opts markup.Options) (res Result) {
	if strings.TrimSpace(text) == "" {
		return Result{Skipped: true}
	}

	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("markup loader panicked", slog.Any("panic", p))
			res = Result{Err: ErrorPrefix + fmt.Sprint(p), Elapsed: time.Since(start)}
		}
	}()

	tree, err := r.loader.Load([]byte(text), opts)
	elapsed := time.Since(start)

	if err != nil {
		r.logger.Debug("render failed", slog.String("error", err.Error()), slog.Duration("elapsed", elapsed))
		return Result{Err: ErrorPrefix + err.Error(), Elapsed: elapsed}
	}

	if tree == nil || tree.Root == nil {
		return Result{Err: ErrorPrefix + "loader returned an empty tree", Elapsed: elapsed}
	}

	r.logger.Debug("render ok", slog.Int("nodes", tree.Root.Count()), slog.Duration("elapsed", elapsed))

	return Result{Tree: tree, Elapsed: elapsed}
}
