package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"fxpreview/internal/tui/state"
)

// Section is a titled group of key bindings.
type Section struct {
	Title string
	Keys  []key.Binding
}

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current focus indicated.
// Disabled bindings are left out.
func (HelpOverlay) View(s state.UIState, sections []Section) string {
	focus := "EDITOR"
	if s.Focus == state.PREVIEW {
		focus = "PREVIEW"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Focus: %s)\n", focus)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.Title)
		for _, k := range sec.Keys {
			if !k.Enabled() {
				continue
			}
			h := k.Help()
			fmt.Fprintf(&b, "  %s: %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nEsc: close")
	return b.String()
}
