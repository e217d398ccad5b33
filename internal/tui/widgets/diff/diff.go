package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"fxpreview/internal/tui/state"
)

var (
	delLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	addLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	delChar = delLine.Underline(true)
	addChar = addLine.Underline(true)
	faint   = lipgloss.NewStyle().Faint(true)
	plain   = lipgloss.NewStyle()
)

type styles struct {
	del, add, delC, addC, same lipgloss.Style
}

func pick(noColor bool) styles {
	if noColor {
		return styles{plain, plain, plain, plain, plain}
	}
	return styles{delLine, addLine, delChar, addChar, faint}
}

type DiffView struct{}

func NewDiffView() DiffView { return DiffView{} }

// View renders the editor buffer against the file on disk. Lines are
// paired by a line-level diff; changed pairs get character highlights.
func (DiffView) View(s state.UIState, mine, disk string, noColor bool) string {
	if mine == disk {
		return "No changes\n"
	}
	st := pick(noColor)
	if s.View == state.SideBySide {
		return sideBySide(mine, disk, s, st)
	}
	return unified(mine, disk, st)
}

// hunk is one row of the aligned diff: an unchanged line, or a deleted
// and/or inserted line.
type hunk struct {
	del, add  string
	hasDel    bool
	hasAdd    bool
	unchanged bool
}

func align(before, after string) []hunk {
	before, after = withNewline(before), withNewline(after)
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var out []hunk
	var dels, adds []string
	flush := func() {
		n := len(dels)
		if len(adds) > n {
			n = len(adds)
		}
		for i := 0; i < n; i++ {
			var h hunk
			if i < len(dels) {
				h.del, h.hasDel = dels[i], true
			}
			if i < len(adds) {
				h.add, h.hasAdd = adds[i], true
			}
			out = append(out, h)
		}
		dels, adds = nil, nil
	}
	for _, df := range diffs {
		ls := splitLines(df.Text)
		switch df.Type {
		case dmp.DiffDelete:
			dels = append(dels, ls...)
		case dmp.DiffInsert:
			adds = append(adds, ls...)
		case dmp.DiffEqual:
			flush()
			for _, l := range ls {
				out = append(out, hunk{del: l, add: l, unchanged: true})
			}
		}
	}
	flush()
	return out
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// charSpans renders the two sides of a changed pair with char-level marks.
func charSpans(bl, al string, st styles) (string, string) {
	d := dmp.New()
	diffs := d.DiffMain(bl, al, false)
	d.DiffCleanupSemantic(diffs)
	var lb, rb strings.Builder
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			lb.WriteString(st.delC.Render(df.Text))
		case dmp.DiffInsert:
			rb.WriteString(st.addC.Render(df.Text))
		case dmp.DiffEqual:
			lb.WriteString(st.del.Render(df.Text))
			rb.WriteString(st.add.Render(df.Text))
		}
	}
	return lb.String(), rb.String()
}

func unified(mine, disk string, st styles) string {
	var b strings.Builder
	b.WriteString("UNSAVED vs DISK (Unified)\n")
	for _, h := range align(mine, disk) {
		switch {
		case h.unchanged:
			if strings.TrimSpace(h.del) == "" {
				continue
			}
			fmt.Fprintf(&b, "  %s\n", st.same.Render(h.del))
		case h.hasDel && h.hasAdd:
			l, r := charSpans(h.del, h.add, st)
			fmt.Fprintf(&b, "%s%s\n", st.del.Render("- "), l)
			fmt.Fprintf(&b, "%s%s\n", st.add.Render("+ "), r)
		case h.hasDel:
			fmt.Fprintf(&b, "%s\n", st.del.Render("- "+h.del))
		case h.hasAdd:
			fmt.Fprintf(&b, "%s\n", st.add.Render("+ "+h.add))
		}
	}
	return b.String()
}

func sideBySide(mine, disk string, s state.UIState, st styles) string {
	const sep = " │ "
	colWidth := 40
	if s.Width > 0 {
		colWidth = (s.Width - lipgloss.Width(sep)) / 2
		if colWidth < 10 {
			colWidth = 10
		}
	}
	var b strings.Builder
	b.WriteString(pad("UNSAVED", colWidth) + sep + "DISK\n")
	for _, h := range align(mine, disk) {
		var l, r string
		switch {
		case h.unchanged:
			l = st.same.Render(clip(h.del, colWidth))
			r = st.same.Render(clip(h.add, colWidth))
		case h.hasDel && h.hasAdd:
			l, r = charSpans(clip(h.del, colWidth-2), clip(h.add, colWidth-2), st)
			l = st.del.Render("- ") + l
			r = st.add.Render("+ ") + r
		case h.hasDel:
			l = st.del.Render("- " + clip(h.del, colWidth-2))
		case h.hasAdd:
			r = st.add.Render("+ " + clip(h.add, colWidth-2))
		}
		fmt.Fprintf(&b, "%s%s%s\n", pad(l, colWidth), sep, r)
	}
	return b.String()
}

func clip(s string, width int) string {
	runes := []rune(s)
	if width < 0 {
		width = 0
	}
	if len(runes) > width {
		runes = runes[:width]
	}
	return string(runes)
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
