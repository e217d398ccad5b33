package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fxpreview/internal/live"
	"fxpreview/internal/tui/state"
	"fxpreview/internal/tui/views/dialog"
	"fxpreview/internal/tui/widgets/diff"
)

// reloadView renders the prompt shown when the open file changed on disk
// while the editor holds unsaved edits.
func (m *Model) reloadView(width int) string {
	d := diff.NewDiffView()
	s := m.ui
	s.Width = width - 4
	body := fmt.Sprintf("%s changed on disk. Reloading discards your unsaved edits.\n\n%s",
		m.pending.Path, d.View(s, m.pending.Previous, m.pending.Text, m.noColor))
	return dialog.Render(dialog.Warning, "Reload from disk?", body,
		"enter: reload   esc: keep my edits   v: unified/side-by-side", width, m.noColor)
}

func (m *Model) updateReload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		r := m.pending
		m.pending = live.Reload{}
		m.ui = state.CloseDialog(m.ui)
		m.session.ApplyReload(r)
		m.syncEditor()
		m.ui = state.SetNotice(m.ui, "Reloaded from disk")
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.pending = live.Reload{}
		m.ui = state.CloseDialog(m.ui)
		m.ui = state.SetNotice(m.ui, "Kept unsaved edits")
		return m, nil
	case key.Matches(msg, m.keys.ToggleDiff):
		m.ui = state.ToggleView(m.ui)
		if m.ui.Stacked {
			m.ui = state.Resize(m.ui, m.ui.Width, m.ui.Height)
		}
		return m, nil
	}
	return m, nil
}
