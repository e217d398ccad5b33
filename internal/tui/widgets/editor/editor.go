package editor

import (
	"github.com/charmbracelet/lipgloss"

	"fxpreview/internal/tui/state"
	"fxpreview/internal/tui/util"
)

type Editor struct{}

func NewEditor() Editor { return Editor{} }

// Header renders the editor pane title: document name, a modified marker
// and the focus state.
func (Editor) Header(s state.UIState, noColor bool) string {
	name := s.Name
	if name == "" {
		name = "untitled"
	}
	if s.Dirty {
		name += " *"
	}
	p := util.DefaultPalette()
	style := p.Style(p.Muted, noColor)
	if s.Focus == state.EDITOR {
		style = p.Style(p.Accent, noColor).Bold(true)
	}
	return style.Render(name)
}

// Frame wraps body in the pane border, highlighted when focused.
func (Editor) Frame(body string, focused bool, width, height int, noColor bool) string {
	p := util.DefaultPalette()
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	if !noColor {
		border = border.BorderForeground(p.Subtle)
		if focused {
			border = border.BorderForeground(p.Accent)
		}
	}
	if width > 2 {
		border = border.Width(width - 2)
	}
	if height > 2 {
		border = border.Height(height - 2)
	}
	return border.Render(body)
}
