package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"fxpreview/internal/tui/widgets/helpoverlay"
)

type keyMap struct {
	Open       key.Binding
	Save       key.Binding
	SaveAs     key.Binding
	New        key.Binding
	Refresh    key.Binding
	ToggleAuto key.Binding
	Focus      key.Binding
	Indent     key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Complete   key.Binding
	ToggleDiff key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Open:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open file")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveAs:     key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "save as")),
		New:        key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new document")),
		Refresh:    key.NewBinding(key.WithKeys("ctrl+r", "f5"), key.WithHelp("ctrl+r/f5", "refresh preview")),
		ToggleAuto: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle auto-refresh")),
		Focus:      key.NewBinding(key.WithKeys("f6", "shift+tab"), key.WithHelp("f6/shift+tab", "switch editor/preview")),
		Indent:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent (editor)")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy preview")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete path")),
		ToggleDiff: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "unified/side-by-side")),
	}
}

func (k keyMap) sections() []helpoverlay.Section {
	return []helpoverlay.Section{
		{Title: "File", Keys: []key.Binding{k.New, k.Open, k.Save, k.SaveAs, k.Quit}},
		{Title: "Preview", Keys: []key.Binding{k.Refresh, k.ToggleAuto, k.Copy}},
		{Title: "View", Keys: []key.Binding{k.Focus, k.Indent, k.Help}},
		{Title: "Dialogs", Keys: []key.Binding{k.Confirm, k.Cancel, k.Complete, k.ToggleDiff}},
	}
}

// toolbar lists the actions shown along the top of the window.
func (k keyMap) toolbar() []key.Binding {
	return []key.Binding{k.Open, k.Save, k.Refresh, k.ToggleAuto}
}
