// Package previewpane renders a preview.Result: the loaded element tree as
// an outline, or the load failure in an error box.
package previewpane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/mattn/go-runewidth"

	"fxpreview/internal/markup"
	"fxpreview/internal/preview"
	"fxpreview/internal/tui/util"
)

// Placeholder is shown before anything has been rendered.
const Placeholder = "Nothing to preview yet"

// maxAttrs limits how many attributes are listed after an element name.
const maxAttrs = 3

type styles struct {
	element, property, attr, text, source, enum, errBox, faint lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		s := lipgloss.NewStyle()
		return styles{s, s, s, s, s, s.PaddingRight(1), s.Border(lipgloss.NormalBorder()).Padding(0, 1), s}
	}
	p := util.DefaultPalette()
	return styles{
		element:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		property: lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		attr:     lipgloss.NewStyle().Foreground(p.Valid),
		text:     lipgloss.NewStyle(),
		source:   lipgloss.NewStyle().Foreground(p.Attention),
		enum:     lipgloss.NewStyle().Foreground(p.Subtle).PaddingRight(1),
		errBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Invalid).
			Foreground(p.Invalid).
			Padding(0, 1),
		faint: lipgloss.NewStyle().Faint(true),
	}
}

// View renders res within width columns. A skipped result renders the
// placeholder; callers keep their previous content instead.
func View(res preview.Result, width int, noColor bool) string {
	st := newStyles(util.NoColor(noColor))
	if width <= 0 {
		width = 80
	}

	switch {
	case res.Err != "":
		inner := width - 4
		if inner < 10 {
			inner = 10
		}
		return st.errBox.Width(inner).Render(res.Err)
	case res.OK():
		return outline(res.Tree, width, st)
	default:
		return st.faint.Render(Placeholder)
	}
}

func outline(t *markup.Tree, width int, st styles) string {
	var b strings.Builder
	for _, imp := range t.Imports {
		b.WriteString(st.faint.Render(runewidth.Truncate("import "+imp, width, "…")))
		b.WriteString("\n")
	}
	if len(t.Imports) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(build(t.Root, 0, width, st).String())
	return b.String()
}

// build converts n into a lipgloss tree. Each level indents by four
// columns, which is subtracted from the label budget.
func build(n *markup.Node, depth, width int, st styles) *tree.Tree {
	t := tree.Root(label(n, width-4*depth, st)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(st.enum)
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(label(c, width-4*(depth+1), st))
			continue
		}
		t.Child(build(c, depth+1, width, st))
	}
	return t
}

// Label returns the plain one-line summary of an element.
func Label(n *markup.Node) string {
	var b strings.Builder
	b.WriteString(n.Name)
	for i, a := range n.Attrs {
		if i == maxAttrs {
			fmt.Fprintf(&b, " +%d", len(n.Attrs)-maxAttrs)
			break
		}
		fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
	}
	if n.Text != "" {
		fmt.Fprintf(&b, " %q", n.Text)
	}
	if n.Source != "" {
		fmt.Fprintf(&b, " (from %s)", n.Source)
	}
	return b.String()
}

func label(n *markup.Node, width int, st styles) string {
	if width < 8 {
		width = 8
	}
	plain := runewidth.Truncate(Label(n), width, "…")
	name := n.Name
	if !strings.HasPrefix(plain, name) || len(plain) == len(name) {
		return nameStyle(n, st).Render(plain)
	}
	rest := plain[len(name):]
	return nameStyle(n, st).Render(name) + restStyle(n, st).Render(rest)
}

func nameStyle(n *markup.Node, st styles) lipgloss.Style {
	if n.IsProperty() {
		return st.property
	}
	return st.element
}

func restStyle(n *markup.Node, st styles) lipgloss.Style {
	if n.Source != "" {
		return st.source
	}
	if len(n.Attrs) == 0 {
		return st.text
	}
	return st.attr
}
