package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"fxpreview/internal/live"
)

// eventBuffer bounds how far the timer and watcher goroutines can run
// ahead of Update before a post blocks.
const eventBuffer = 64

// channelPoster returns a live.Poster feeding ch. A post only blocks if the
// buffer is full, and gives up once ctx is done.
func channelPoster(ctx context.Context, ch chan<- any) live.Poster {
	return func(msg any) {
		select {
		case ch <- msg:
		case <-ctx.Done():
		}
	}
}

// waitEvent delivers the next session message to Update. Update re-arms it
// after every delivery.
func waitEvent(ch <-chan any) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
