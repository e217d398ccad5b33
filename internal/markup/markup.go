// Package markup turns declarative UI documents into an in-memory visual
// tree. The vocabulary of the documents (which tags exist, what attributes
// mean) is not interpreted here; loaders only build the element tree and
// report structural failures.
package markup

import (
	"fmt"
	"strings"
	"unicode"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the visual tree.
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Node
	Line     int
	// Source is set on the root of a subtree pulled in from another file.
	Source string
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// IsProperty reports whether the element is a property element such as
// <children> or <padding> rather than an object. Property elements start
// with a lower-case letter.
func (n *Node) IsProperty() bool {
	local := n.Name
	if i := strings.LastIndexByte(local, ':'); i >= 0 {
		local = local[i+1:]
	}

	for _, r := range local {
		return unicode.IsLower(r)
	}

	return false
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}

	c := 1
	for _, ch := range n.Children {
		c += ch.Count()
	}

	return c
}

// Tree is a successfully loaded document.
type Tree struct {
	Root *Node
	// Imports lists processing-instruction imports in document order.
	Imports []string
}

// Options carry per-load context.
type Options struct {
	// BaseDir resolves relative include references. Empty for unsaved
	// documents.
	BaseDir string
}

// Loader converts source text into a visual tree.
type Loader interface {
	Load(src []byte, opts Options) (*Tree, error)
}

// Error is a structural failure reported by a loader.
type Error struct {
	Line int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}

		msg += e.Err.Error()
	}

	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}

	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ForExtension picks the loader for a recognized file extension.
func ForExtension(ext string) Loader {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return YAMLLoader{}
	default:
		return XMLLoader{}
	}
}
