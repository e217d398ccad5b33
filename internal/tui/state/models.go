package state

// Focus names the pane receiving keystrokes.
type Focus int

const (
	EDITOR Focus = iota
	PREVIEW
)

// DiffMode controls how the reload conflict diff is rendered.
type DiffMode int

const (
	Unified DiffMode = iota
	SideBySide
)

// Dialog is the modal currently covering the panes, if any.
type Dialog int

const (
	NoDialog Dialog = iota
	OpenPrompt
	SaveAsPrompt
	ReloadConfirm
	ErrorDialog
	HelpDialog
)

// UIState holds cross-widget UI state used by the status bar, panes and dialogs.
type UIState struct {
	// Focus & layout
	Focus   Focus
	Width   int
	Height  int
	MinCol  int // narrowest usable pane column; default 30 at runtime if zero
	Stacked bool

	// Document flags mirrored from the session
	Name  string
	Dirty bool
	Auto  bool

	// Dialogs
	Dialog Dialog
	View   DiffMode

	// Notices and ephemeral messages
	Notice    string
	QuitArmed bool
}
