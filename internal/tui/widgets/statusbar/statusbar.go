package statusbar

import (
	"fmt"
	"strings"

	"fxpreview/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state.
func (StatusBar) View(s state.UIState) string {
	focus := "[EDITOR]"
	if s.Focus == state.PREVIEW {
		focus = "[PREVIEW]"
	}
	auto := "Auto: Off"
	if s.Auto {
		auto = "Auto: On"
	}
	layout := "Split"
	if s.Stacked {
		layout = "Stacked"
	}
	size := fmt.Sprintf("%dx%d", s.Width, s.Height)

	parts := []string{focus, auto, layout, size, "F1: help"}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
