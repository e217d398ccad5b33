package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor reports whether output should be monochrome: when asked
// explicitly, when NO_COLOR is set, or on a dumb terminal.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb"
}

// Palette names colors by what they mark in the editor and preview.
type Palette struct {
	Accent    lipgloss.TerminalColor // focus, element names
	Valid     lipgloss.TerminalColor // successful renders, attributes
	Invalid   lipgloss.TerminalColor // markup and I/O errors
	Attention lipgloss.TerminalColor // unsaved edits, included content
	Muted     lipgloss.TerminalColor
	Subtle    lipgloss.TerminalColor // borders, tree guides
}

// DefaultPalette adapts to light and dark terminal backgrounds.
func DefaultPalette() Palette {
	return Palette{
		Accent:    lipgloss.AdaptiveColor{Light: "#2952CC", Dark: "#3D6DFF"},
		Valid:     lipgloss.AdaptiveColor{Light: "#1E7D57", Dark: "#2AA876"},
		Invalid:   lipgloss.AdaptiveColor{Light: "#B52D29", Dark: "#D9534F"},
		Attention: lipgloss.AdaptiveColor{Light: "#B5761C", Dark: "#F0AD4E"},
		Muted:     lipgloss.AdaptiveColor{Light: "#5C636A", Dark: "#6C757D"},
		Subtle:    lipgloss.AdaptiveColor{Light: "#A0A0A0", Dark: "#5A5A5A"},
	}
}

// Style returns a foreground style for c, or a plain style when color is off.
func (p Palette) Style(c lipgloss.TerminalColor, noColor bool) lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}
