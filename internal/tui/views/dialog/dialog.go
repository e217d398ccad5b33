package dialog

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fxpreview/internal/tui/util"
)

// Kind selects the dialog accent color.
type Kind int

const (
	Info Kind = iota
	Warning
	Danger
)

// Render frames title, body and a key hint footer in a bordered box no
// wider than width.
func Render(kind Kind, title, body, footer string, width int, noColor bool) string {
	p := util.DefaultPalette()
	accent := p.Accent
	switch kind {
	case Warning:
		accent = p.Attention
	case Danger:
		accent = p.Invalid
	}

	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	head := lipgloss.NewStyle().Bold(true)
	foot := lipgloss.NewStyle().Faint(true)
	if !noColor {
		box = box.BorderForeground(accent)
		head = head.Foreground(accent)
	}
	if width > 8 {
		box = box.MaxWidth(width)
		if w := lipgloss.Width(body); w > width-4 {
			box = box.Width(width - 4)
		}
	}

	parts := []string{head.Render(title), "", strings.TrimRight(body, "\n")}
	if footer != "" {
		parts = append(parts, "", foot.Render(footer))
	}
	return box.Render(strings.Join(parts, "\n"))
}
