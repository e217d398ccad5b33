package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"fxpreview/internal/document"
	"fxpreview/internal/live"
	"fxpreview/internal/preview"
	"fxpreview/internal/tui/state"
	"fxpreview/internal/tui/util"
	"fxpreview/internal/tui/views/dialog"
	"fxpreview/internal/tui/widgets/editor"
	"fxpreview/internal/tui/widgets/helpoverlay"
	"fxpreview/internal/tui/widgets/previewpane"
	"fxpreview/internal/tui/widgets/statusbar"
	"fxpreview/internal/tui/widgets/tagchips"
)

// Options configure the interactive editor.
type Options struct {
	// Path is opened on start when set.
	Path        string
	Debounce    time.Duration
	Extension   string
	AutoRefresh bool
	NoColor     bool
	Logger      *slog.Logger
}

// Run shows the split editor/preview window and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan any, eventBuffer)
	session, err := live.New(live.Options{
		Debounce:    opts.Debounce,
		Extension:   opts.Extension,
		AutoRefresh: opts.AutoRefresh,
		Logger:      opts.Logger,
		Post:        channelPoster(ctx, events),
	})
	if err != nil {
		return err
	}
	defer session.Close()

	m := newModel(session, events, opts)
	if opts.Path != "" {
		m.startup = m.open(opts.Path)
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return session.Run(gctx) })
	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})
	return g.Wait()
}

// ===== Model =====

// Model is the bubbletea model. Update is the only place the session is
// touched; timer and watcher goroutines reach it through the event channel.
type Model struct {
	session *live.Session
	events  <-chan any
	logger  *slog.Logger
	keys    keyMap
	noColor bool

	ui      state.UIState
	editor  textarea.Model
	preview viewport.Model
	prompt  pathPrompt
	pending live.Reload

	errTitle string
	errText  string

	// pane outer sizes
	ew, eh, pw, ph int

	copyFn   func(string) error
	startup  tea.Cmd
	quitting bool
}

func newModel(session *live.Session, events <-chan any, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Placeholder = "Type or open an " + session.Extension() + " document"
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()

	m := &Model{
		session: session,
		events:  events,
		logger:  logger,
		keys:    defaultKeys(),
		noColor: util.NoColor(opts.NoColor),
		editor:  ta,
		preview: viewport.New(40, 10),
		copyFn:  clipboard.WriteAll,
	}
	m.ui = state.Resize(state.UIState{Auto: session.AutoRefresh()}, 80, 24)
	m.syncFlags()
	m.layout()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitEvent(m.events), m.startup, m.titleCmd())
}

// Update handles all TUI interactions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		m.layout()
		return m, nil

	case live.RefreshDue:
		if res, ok := m.session.HandleRefreshDue(msg); ok {
			m.show(res)
		}
		return m, waitEvent(m.events)

	case live.FileChanged:
		m.fileChanged(msg)
		return m, waitEvent(m.events)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ui.Dialog {
	case state.OpenPrompt, state.SaveAsPrompt:
		return m.updatePrompt(msg)
	case state.ReloadConfirm:
		return m.updateReload(msg)
	case state.ErrorDialog, state.HelpDialog:
		if key.Matches(msg, m.keys.Confirm, m.keys.Cancel, m.keys.Help) {
			m.ui = state.CloseDialog(m.ui)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.session.Document().Dirty() && !m.ui.QuitArmed {
			m.ui = state.ArmQuit(m.ui)
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Open):
		seed := m.session.Document().Dir()
		if seed == "" {
			seed = "."
		}
		m.openPrompt(state.OpenPrompt, expandPath(seed)+string(filepath.Separator))
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m, m.save()

	case key.Matches(msg, m.keys.SaveAs):
		m.openPrompt(state.SaveAsPrompt, m.session.Document().Path())
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.session.NewDocument()
		m.editor.Reset()
		m.syncFlags()
		m.show(preview.Result{})
		m.ui = state.SetNotice(m.ui, "New document")
		return m, m.titleCmd()

	case key.Matches(msg, m.keys.Refresh):
		m.show(m.session.Refresh())
		m.ui = state.SetNotice(m.ui, "Refreshed")
		return m, nil

	case key.Matches(msg, m.keys.ToggleAuto):
		on := !m.session.AutoRefresh()
		err := m.session.SetAutoRefresh(on)
		m.ui = state.SetAuto(m.ui, on)
		if err != nil {
			m.showError("Could not watch file", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Focus),
		key.Matches(msg, m.keys.Indent) && m.ui.Focus == state.PREVIEW:
		m.ui = state.ToggleFocus(m.ui)
		if m.ui.Focus == state.EDITOR {
			return m, m.editor.Focus()
		}
		m.editor.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Indent):
		m.editor.InsertString("\t")
		m.syncEdit()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyPreview()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.ui = state.OpenDialog(m.ui, state.HelpDialog)
		return m, nil
	}

	var cmd tea.Cmd
	if m.ui.Focus == state.PREVIEW {
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	m.editor, cmd = m.editor.Update(msg)
	m.syncEdit()
	return m, cmd
}

// syncEdit hands the editor content to the session when it changed.
func (m *Model) syncEdit() {
	if m.editor.Value() == m.session.Document().Text() {
		return
	}
	m.session.Edit(m.editor.Value())
	m.ui.QuitArmed = false
	m.syncFlags()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res, cmd := m.prompt.update(msg)
	switch res {
	case promptSubmitted:
		kind := m.ui.Dialog
		path := m.prompt.value()
		m.ui = state.CloseDialog(m.ui)
		if kind == state.OpenPrompt {
			if !m.session.Recognizes(path) {
				m.showError("Unsupported file type", fmt.Errorf("%s is not a %s document", filepath.Base(path), m.session.Extension()))
				return m, nil
			}
			return m, m.open(path)
		}
		return m, m.saveAs(path)
	case promptCancelled:
		m.ui = state.CloseDialog(m.ui)
		return m, nil
	}
	return m, cmd
}

func (m *Model) openPrompt(kind state.Dialog, seed string) {
	m.prompt = newPathPrompt(seed, m.session.Extension(), m.session.Recognizes, m.keys)
	m.prompt.setWidth(m.dialogWidth() - 4)
	m.ui = state.OpenDialog(m.ui, kind)
}

// ===== Actions =====

func (m *Model) open(path string) tea.Cmd {
	res, err := m.session.Open(path)
	if err != nil && !isWatchError(err) {
		m.showError("Could not open file", err)
		return nil
	}
	m.syncEditor()
	m.preview.GotoTop()
	m.show(res)
	m.ui = state.SetNotice(m.ui, "Opened "+m.session.Document().Name())
	if err != nil {
		m.showError("Could not watch file", err)
	}
	return m.titleCmd()
}

func (m *Model) save() tea.Cmd {
	res, err := m.session.Save()
	if errors.Is(err, document.ErrNoPath) {
		m.openPrompt(state.SaveAsPrompt, "")
		return nil
	}
	if err != nil {
		m.showError("Could not save file", err)
		return nil
	}
	m.show(res)
	m.syncFlags()
	m.ui = state.SetNotice(m.ui, "Saved "+m.session.Document().Path())
	return nil
}

func (m *Model) saveAs(path string) tea.Cmd {
	res, err := m.session.SaveAs(path)
	if err != nil && !isWatchError(err) {
		m.showError("Could not save file", err)
		return nil
	}
	m.show(res)
	m.syncFlags()
	m.ui = state.SetNotice(m.ui, "Saved "+m.session.Document().Path())
	if err != nil {
		m.showError("Could not watch file", err)
	}
	return m.titleCmd()
}

func (m *Model) fileChanged(msg live.FileChanged) {
	r, err := m.session.HandleFileChanged(msg)
	if err != nil {
		m.showError("Could not reload file", err)
		return
	}
	switch r.Action {
	case live.ReloadApplied:
		m.syncEditor()
		m.ui = state.SetNotice(m.ui, "Reloaded from disk")
	case live.ReloadNeedsConfirm:
		m.pending = r
		m.ui = state.OpenDialog(m.ui, state.ReloadConfirm)
	}
}

func (m *Model) copyPreview() {
	text := previewpane.View(m.session.Last(), m.preview.Width, true)
	if err := m.copyFn(text); err != nil {
		m.showError("Could not copy to clipboard", err)
		return
	}
	m.ui = state.SetNotice(m.ui, "Preview copied")
}

func (m *Model) showError(title string, err error) {
	m.logger.Error(title, slog.String("error", err.Error()))
	m.errTitle, m.errText = title, err.Error()
	m.ui = state.OpenDialog(m.ui, state.ErrorDialog)
}

// show displays res; a skipped render keeps whatever is on screen.
func (m *Model) show(res preview.Result) {
	if res.Skipped {
		return
	}
	m.preview.SetContent(previewpane.View(res, m.preview.Width, m.noColor))
}

func (m *Model) syncEditor() {
	m.editor.SetValue(m.session.Document().Text())
	m.syncFlags()
}

func (m *Model) syncFlags() {
	doc := m.session.Document()
	m.ui.Name = doc.Name()
	m.ui.Dirty = doc.Dirty()
	m.ui.Auto = m.session.AutoRefresh()
}

func (m *Model) titleCmd() tea.Cmd {
	return tea.SetWindowTitle("fxpreview - " + m.session.Document().Name())
}

func isWatchError(err error) bool {
	var ioErr *document.IOError
	return errors.As(err, &ioErr) && ioErr.Op == "watch"
}

// ===== Views =====

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

const chromeLines = 2 // toolbar + status bar

func (m *Model) layout() {
	w, h := m.ui.Width, m.ui.Height-chromeLines
	if h < 8 {
		h = 8
	}
	if m.ui.Stacked {
		m.ew, m.pw = w, w
		m.eh = h / 2
		m.ph = h - m.eh
	} else {
		m.ew = w / 2
		m.pw = w - m.ew
		m.eh, m.ph = h, h
	}
	// border takes two columns and two rows, the pane header one more row
	m.editor.SetWidth(max(m.ew-2, 10))
	m.editor.SetHeight(max(m.eh-3, 1))
	m.preview.Width = max(m.pw-2, 10)
	m.preview.Height = max(m.ph-3, 1)
	m.prompt.setWidth(m.dialogWidth() - 4)
	m.show(m.session.Last())
}

func (m *Model) dialogWidth() int {
	w := m.ui.Width - 4
	if w <= 0 {
		w = 80
	}
	return min(w, 100)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	ed := editor.NewEditor()

	_, watching := m.session.Registration()
	tags := util.ComputeTags(m.ui.Dirty, m.ui.Auto, watching, m.session.Last())
	toolbar := titleStyle.Render("fxpreview") + " - " + ed.Header(m.ui, m.noColor) + "  " + tagchips.View(tags, m.noColor) + "  " + m.toolbarHints()

	var body string
	if m.ui.Dialog != state.NoDialog {
		body = lipgloss.Place(m.ui.Width, m.ui.Height-chromeLines, lipgloss.Center, lipgloss.Center, m.dialogView())
	} else {
		left := ed.Frame(ed.Header(m.ui, m.noColor)+"\n"+m.editor.View(), m.ui.Focus == state.EDITOR, m.ew, m.eh, m.noColor)
		right := ed.Frame(faintStyle.Render("Preview")+"\n"+m.preview.View(), m.ui.Focus == state.PREVIEW, m.pw, m.ph, m.noColor)
		if m.ui.Stacked {
			body = lipgloss.JoinVertical(lipgloss.Left, left, right)
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, toolbar, body, statusbar.NewStatusBar().View(m.ui))
}

func (m *Model) toolbarHints() string {
	parts := make([]string, 0, 4)
	for _, b := range m.keys.toolbar() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return faintStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) dialogView() string {
	w := m.dialogWidth()
	switch m.ui.Dialog {
	case state.OpenPrompt:
		return dialog.Render(dialog.Info, "Open file", m.prompt.view(), "enter: open   tab: complete   esc: cancel", w, m.noColor)
	case state.SaveAsPrompt:
		return dialog.Render(dialog.Info, "Save as", m.prompt.view(), "enter: save   tab: complete   esc: cancel", w, m.noColor)
	case state.ReloadConfirm:
		return m.reloadView(w)
	case state.ErrorDialog:
		return dialog.Render(dialog.Danger, m.errTitle, m.errText, "enter/esc: close", w, m.noColor)
	case state.HelpDialog:
		return dialog.Render(dialog.Info, "Keys", helpoverlay.NewHelpOverlay().View(m.ui, m.keys.sections()), "", w, m.noColor)
	}
	return ""
}
