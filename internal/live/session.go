// Package live is the debounced refresh orchestrator. A Session owns the
// open document, the debounce scheduler and the file watcher. Its methods
// must be called from one event loop; the timer and watcher goroutines
// only ever post messages back to that loop.
package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fxpreview/internal/debounce"
	"fxpreview/internal/document"
	"fxpreview/internal/markup"
	"fxpreview/internal/preview"
	"fxpreview/internal/watch"
)

// Poster delivers a message to the owning event loop without waiting for
// it to be handled.
type Poster func(msg any)

// RefreshDue is posted when the debounce delay for an edit has elapsed.
type RefreshDue struct {
	Token debounce.Token
}

// FileChanged is posted when the watched file was modified on disk. The
// watcher goroutine reads the file so the loop never blocks on I/O.
type FileChanged struct {
	Path string
	Text string
	Err  error
	At   time.Time
}

// ReloadAction says what HandleFileChanged did with an external change.
type ReloadAction int

const (
	// ReloadIgnored means the change was stale, redundant or suspended.
	ReloadIgnored ReloadAction = iota
	// ReloadApplied means the clean document now holds the disk content.
	ReloadApplied
	// ReloadNeedsConfirm means applying the change would discard unsaved
	// edits. Nothing was changed; call ApplyReload to accept.
	ReloadNeedsConfirm
)

// Reload describes an external change to the open file.
type Reload struct {
	Action   ReloadAction
	Path     string
	Text     string
	Previous string
}

// Options configure a Session.
type Options struct {
	Debounce    time.Duration
	Extension   string
	AutoRefresh bool
	// Loader overrides the extension-based loader choice.
	Loader markup.Loader
	Logger *slog.Logger
	Post   Poster
}

// Session is the explicit editing context: current document, refresh
// token and watch registration.
type Session struct {
	opts    Options
	logger  *slog.Logger
	doc     *document.Document
	sched   *debounce.Scheduler
	watcher *watch.Watcher
	auto    bool
	last    preview.Result
}

// New creates a session with an empty document.
func New(opts Options) (*Session, error) {
	if opts.Post == nil {
		return nil, errors.New("live: Options.Post is required")
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Extension == "" {
		opts.Extension = document.DefaultExtension
	}

	s := &Session{
		opts:   opts,
		logger: opts.Logger,
		doc:    document.New(),
		auto:   opts.AutoRefresh,
	}

	s.sched = debounce.New(opts.Debounce, func(tok debounce.Token) {
		opts.Post(RefreshDue{Token: tok})
	})

	w, err := watch.New(s.onFileEvent, opts.Logger)
	if err != nil {
		s.sched.Stop()
		return nil, &document.IOError{Op: "watch", Path: "", Err: err}
	}

	s.watcher = w

	return s, nil
}

// Run drives the file watcher until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	return s.watcher.Run(ctx)
}

// Close stops pending refreshes and releases the watcher.
func (s *Session) Close() error {
	s.sched.Stop()
	return s.watcher.Close()
}

// Document returns the open document.
func (s *Session) Document() *document.Document { return s.doc }

// AutoRefresh reports whether edits and disk changes refresh the preview.
func (s *Session) AutoRefresh() bool { return s.auto }

// Extension returns the recognized file extension.
func (s *Session) Extension() string { return s.opts.Extension }

// Recognizes reports whether path has an extension the session can load:
// the configured one, or the YAML form.
func (s *Session) Recognizes(path string) bool {
	if document.HasExtension(path, s.opts.Extension) {
		return true
	}

	_, ok := markup.ForExtension(filepath.Ext(path)).(markup.YAMLLoader)

	return ok
}

// Delay returns the debounce quiet period.
func (s *Session) Delay() time.Duration { return s.sched.Delay() }

// Last returns the most recent non-skipped render.
func (s *Session) Last() preview.Result { return s.last }

// Registration returns the active watch registration.
func (s *Session) Registration() (watch.Registration, bool) {
	return s.watcher.Registration()
}

// NewDocument replaces the open document with an empty, unbound one.
func (s *Session) NewDocument() {
	s.doc = document.New()
	s.sched.Reset()
	s.watcher.Unwatch()
	s.last = preview.Result{}
}

// Open loads path, renders it immediately and watches it when
// auto-refresh is on. A watch failure is returned as an *document.IOError
// with Op "watch"; the document is open regardless.
func (s *Session) Open(path string) (preview.Result, error) {
	doc, err := document.Load(path)
	if err != nil {
		return preview.Result{}, err
	}

	s.doc = doc
	s.sched.Reset()
	s.logger.Info("document opened", slog.String("path", doc.Path()))

	res := s.render()

	return res, s.rewatch()
}

// Edit records new editor content. It reports whether a debounced refresh
// was scheduled.
func (s *Session) Edit(text string) bool {
	if text == s.doc.Text() {
		return false
	}

	s.doc.SetText(text)

	if !s.auto {
		return false
	}

	s.sched.Touch()

	return true
}

// HandleRefreshDue renders if msg still carries the latest token.
func (s *Session) HandleRefreshDue(msg RefreshDue) (preview.Result, bool) {
	if !s.auto || msg.Token != s.sched.Current() {
		return preview.Result{}, false
	}

	return s.render(), true
}

// Refresh renders the current text now.
func (s *Session) Refresh() preview.Result {
	return s.render()
}

// Save writes the document to its bound path and re-renders. It returns
// document.ErrNoPath when a destination must be chosen first.
func (s *Session) Save() (preview.Result, error) {
	if err := s.doc.Save(); err != nil {
		return preview.Result{}, err
	}

	s.logger.Info("document saved", slog.String("path", s.doc.Path()))

	return s.render(), nil
}

// SaveAs writes the document to path, adding the recognized extension
// when it is missing, binds it and re-establishes the watch.
func (s *Session) SaveAs(path string) (preview.Result, error) {
	path = document.WithExtension(path, s.opts.Extension)

	if err := s.doc.SaveAs(path); err != nil {
		return preview.Result{}, err
	}

	s.sched.Reset()

	s.logger.Info("document saved", slog.String("path", s.doc.Path()))

	res := s.render()

	return res, s.rewatch()
}

// SetAutoRefresh toggles debounced renders and file-watch reloads. Turning
// it back on re-establishes the watch for the open file.
func (s *Session) SetAutoRefresh(on bool) error {
	s.auto = on

	if !on {
		s.watcher.Unwatch()
		return nil
	}

	return s.rewatch()
}

// HandleFileChanged decides what to do with an external modification.
// Clean documents are reloaded in place; documents with unsaved edits are
// left alone and the caller is asked to confirm.
func (s *Session) HandleFileChanged(msg FileChanged) (Reload, error) {
	if !s.auto || msg.Path != s.doc.Path() {
		return Reload{Action: ReloadIgnored}, nil
	}

	if msg.Err != nil {
		if errors.Is(msg.Err, os.ErrNotExist) {
			// Mid-way through a rename-style save; the Create event follows.
			return Reload{Action: ReloadIgnored}, nil
		}

		return Reload{Action: ReloadIgnored}, &document.IOError{Op: "reload", Path: msg.Path, Err: msg.Err}
	}

	if msg.Text == s.doc.Text() {
		s.doc.Replace(msg.Text)
		return Reload{Action: ReloadIgnored}, nil
	}

	if msg.Text == s.doc.Saved() {
		// Our own save, seen after the user kept typing.
		return Reload{Action: ReloadIgnored}, nil
	}

	r := Reload{Path: msg.Path, Text: msg.Text, Previous: s.doc.Text()}

	if s.doc.Dirty() {
		s.logger.Warn("external change conflicts with unsaved edits", slog.String("path", msg.Path))

		r.Action = ReloadNeedsConfirm

		return r, nil
	}

	s.ApplyReload(r)
	r.Action = ReloadApplied

	return r, nil
}

// ApplyReload replaces the document content with r.Text and schedules a
// refresh, exactly as if the text had been typed. Reloads for a file that
// is no longer open are dropped.
func (s *Session) ApplyReload(r Reload) {
	if r.Path != s.doc.Path() {
		return
	}

	s.doc.Replace(r.Text)
	s.logger.Info("document reloaded from disk", slog.String("path", r.Path))

	if s.auto {
		s.sched.Touch()
	}
}

func (s *Session) rewatch() error {
	path := s.doc.Path()

	if !s.auto || path == "" {
		s.watcher.Unwatch()
		return nil
	}

	if err := s.watcher.Watch(path); err != nil {
		s.watcher.Unwatch()
		return &document.IOError{Op: "watch", Path: path, Err: err}
	}

	return nil
}

func (s *Session) render() preview.Result {
	loader := s.opts.Loader
	if loader == nil {
		ext := s.opts.Extension
		if p := s.doc.Path(); p != "" {
			ext = filepath.Ext(p)
		}

		loader = markup.ForExtension(ext)
	}

	res := preview.NewRenderer(loader, s.logger).Render(s.doc.Text(), markup.Options{BaseDir: s.doc.Dir()})
	if !res.Skipped {
		s.last = res
	}

	return res
}

func (s *Session) onFileEvent(ev watch.Event) {
	data, err := os.ReadFile(ev.Path)
	if err != nil {
		err = fmt.Errorf("reading %s: %w", ev.Path, err)
	}

	s.opts.Post(FileChanged{Path: ev.Path, Text: string(data), Err: err, At: ev.At})
}
