package state

// ToggleFocus moves keyboard focus between editor and preview.
func ToggleFocus(s UIState) UIState {
	if s.Focus == EDITOR {
		s.Focus = PREVIEW
		s.Notice = "Focus: preview"
	} else {
		s.Focus = EDITOR
		s.Notice = "Focus: editor"
	}
	return s
}

// SetAuto records the auto-refresh flag and sets a brief notice.
func SetAuto(s UIState, on bool) UIState {
	s.Auto = on
	if on {
		s.Notice = "Auto-refresh on"
	} else {
		s.Notice = "Auto-refresh off"
	}
	return s
}

// ToggleView switches between Unified and SideBySide diff views.
func ToggleView(s UIState) UIState {
	if s.View == Unified {
		s.View = SideBySide
	} else {
		s.View = Unified
	}
	return s
}

// Resize updates the terminal size and stacks the panes when there is no
// room for two columns. Side-by-side diffs fall back to unified likewise.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	threshold := 2*minCol(s) + 3
	stacked := s.Width < threshold
	if stacked && !s.Stacked {
		s.Notice = "Narrow width: stacking panes"
	}
	s.Stacked = stacked
	if s.View == SideBySide && stacked {
		s.View = Unified
	}
	return s
}

// OpenDialog shows d and clears any armed quit.
func OpenDialog(s UIState, d Dialog) UIState {
	s.Dialog = d
	s.QuitArmed = false
	return s
}

// CloseDialog returns to the panes.
func CloseDialog(s UIState) UIState {
	s.Dialog = NoDialog
	return s
}

// ArmQuit is the first half of quitting with unsaved edits.
func ArmQuit(s UIState) UIState {
	s.QuitArmed = true
	s.Notice = "Unsaved changes: press again to quit"
	return s
}

// SetNotice replaces the ephemeral status message.
func SetNotice(s UIState, notice string) UIState {
	s.Notice = notice
	s.QuitArmed = false
	return s
}

func minCol(s UIState) int {
	if s.MinCol <= 0 {
		return 30
	}
	return s.MinCol
}
