package live

import (
	"context"

	"fxpreview/internal/preview"
)

// Handlers receive the outcomes of a Loop. Nil handlers are skipped.
type Handlers struct {
	// Rendered is called after every debounced render.
	Rendered func(preview.Result)
	// Reloaded is called after a clean document took external content.
	Reloaded func(Reload)
	// Conflict is called when an external change would discard unsaved
	// edits. The edits are kept.
	Conflict func(Reload)
	// Error is called for reload failures.
	Error func(error)
}

// Loop is the event loop for non-interactive front ends. It plays the role
// bubbletea's Update plays in the terminal UI: a single goroutine draining
// one queue and the only caller of Session methods.
type Loop struct {
	msgs chan any
}

// NewLoop creates a loop whose queue holds size messages.
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = 1
	}

	return &Loop{msgs: make(chan any, size)}
}

// Poster returns the Poster to pass in Options. Posting gives up once ctx
// is done.
func (l *Loop) Poster(ctx context.Context) Poster {
	return func(msg any) {
		select {
		case l.msgs <- msg:
		case <-ctx.Done():
		}
	}
}

// Run dispatches queued messages to s until ctx is cancelled.
func (l *Loop) Run(ctx context.Context, s *Session, h Handlers) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-l.msgs:
			l.dispatch(s, msg, h)
		}
	}
}

func (l *Loop) dispatch(s *Session, msg any, h Handlers) {
	switch msg := msg.(type) {
	case RefreshDue:
		res, ok := s.HandleRefreshDue(msg)
		if ok && h.Rendered != nil {
			h.Rendered(res)
		}

	case FileChanged:
		r, err := s.HandleFileChanged(msg)
		if err != nil {
			if h.Error != nil {
				h.Error(err)
			}

			return
		}

		switch r.Action {
		case ReloadApplied:
			if h.Reloaded != nil {
				h.Reloaded(r)
			}
		case ReloadNeedsConfirm:
			if h.Conflict != nil {
				h.Conflict(r)
			}
		}
	}
}
