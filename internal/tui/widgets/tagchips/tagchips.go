package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fxpreview/internal/tui/state"
	"fxpreview/internal/tui/util"
)

// View renders status tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.MODIFIED:
		return "Modified"
	case state.AUTO:
		return "Auto"
	case state.MANUAL:
		return "Manual"
	case state.WATCHING:
		return "Watching"
	case state.ERROR:
		return "Error"
	case state.NODES:
		return fmt.Sprintf("Nodes %d", t.Value)
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	switch t.Kind {
	case state.MODIFIED:
		return base.Background(p.Attention).Foreground(lipgloss.Color("#111111"))
	case state.AUTO:
		return base.Background(p.Accent)
	case state.MANUAL:
		return base.Background(p.Subtle)
	case state.WATCHING:
		return base.Background(p.Valid)
	case state.ERROR:
		return base.Background(p.Invalid)
	case state.NODES:
		return base.Background(p.Muted)
	default:
		return base
	}
}
