// Package document holds the text being edited and its binding to a file
// on disk.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is the recognized markup file extension.
const DefaultExtension = ".fxml"

// ErrNoPath is returned by Save when the document has never been bound to a
// file. Callers prompt for a destination and use SaveAs.
var ErrNoPath = errors.New("document has no file path")

// IOError describes a failed read or write of a document file.
type IOError struct {
	Op   string // "open", "save", "reload" or "watch"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Document is the in-memory text of one markup file. It is not safe for
// concurrent use; a single event loop owns it.
type Document struct {
	path  string
	text  string
	saved string
}

// New returns an empty document with no file binding.
func New() *Document {
	return &Document{}
}

// Load reads path into a new document.
func Load(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &IOError{Op: "open", Path: abs, Err: err}
	}

	text := string(data)

	return &Document{path: abs, text: text, saved: text}, nil
}

// Path returns the bound file path, or "" for an unsaved document.
func (d *Document) Path() string { return d.path }

// Name returns the base name of the bound file, or "untitled".
func (d *Document) Name() string {
	if d.path == "" {
		return "untitled"
	}

	return filepath.Base(d.path)
}

// Dir returns the directory of the bound file, or "" when unbound.
func (d *Document) Dir() string {
	if d.path == "" {
		return ""
	}

	return filepath.Dir(d.path)
}

// Text returns the current content.
func (d *Document) Text() string { return d.text }

// SetText records a user edit.
func (d *Document) SetText(text string) { d.text = text }

// Saved returns the content last read from or written to disk.
func (d *Document) Saved() string { return d.saved }

// Dirty reports whether the content differs from what was last read or
// written.
func (d *Document) Dirty() bool { return d.text != d.saved }

// Replace overwrites the content with text that came from disk. The new
// content becomes the saved baseline.
func (d *Document) Replace(text string) {
	d.text = text
	d.saved = text
}

// Save writes the content to the bound path.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}

	return d.write(d.path)
}

// SaveAs writes the content to path and binds the document to it.
func (d *Document) SaveAs(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}

	if err := d.write(abs); err != nil {
		return err
	}

	d.path = abs

	return nil
}

func (d *Document) write(path string) error {
	if err := os.WriteFile(path, []byte(d.text), 0o644); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}

	d.saved = d.text

	return nil
}

// WithExtension appends ext to path unless it already ends with it.
func WithExtension(path, ext string) string {
	if ext == "" || strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}

	return path + ext
}

// HasExtension reports whether path carries ext, ignoring case.
func HasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}
