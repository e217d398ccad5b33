package previewpane

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"fxpreview/internal/markup"
	"fxpreview/internal/preview"
)

func sampleTree() *markup.Tree {
	return &markup.Tree{
		Imports: []string{"javafx.scene.control.*"},
		Root: &markup.Node{
			Name:  "VBox",
			Attrs: []markup.Attr{{Name: "spacing", Value: "10"}},
			Children: []*markup.Node{{
				Name: "children",
				Children: []*markup.Node{
					{Name: "Label", Attrs: []markup.Attr{{Name: "text", Value: "Hello"}}},
					{Name: "Button", Text: "OK"},
					{Name: "HBox", Source: "header.fxml"},
				},
			}},
		},
	}
}

func TestView_Outline(t *testing.T) {
	out := View(preview.Result{Tree: sampleTree()}, 80, true)

	assert.Contains(t, out, "import javafx.scene.control.*")
	assert.Contains(t, out, `VBox spacing="10"`)
	assert.Contains(t, out, "children")
	assert.Contains(t, out, `Label text="Hello"`)
	assert.Contains(t, out, `Button "OK"`)
	assert.Contains(t, out, "HBox (from header.fxml)")
	assert.Contains(t, out, "╰──")
}

func TestView_Error(t *testing.T) {
	out := View(preview.Result{Err: preview.ErrorPrefix + "line 1: boom"}, 60, true)

	assert.Contains(t, out, "FXML Error: line 1: boom")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}
}

func TestView_Placeholder(t *testing.T) {
	assert.Equal(t, Placeholder, View(preview.Result{}, 40, true))
}

func TestView_TruncatesLongLabels(t *testing.T) {
	long := &markup.Node{Name: "Label", Attrs: []markup.Attr{{Name: "text", Value: strings.Repeat("x", 200)}}}
	out := View(preview.Result{Tree: &markup.Tree{Root: long}}, 30, true)

	assert.Contains(t, out, "…")
	assert.LessOrEqual(t, lipgloss.Width(strings.Split(out, "\n")[0]), 30)
}

func TestLabel(t *testing.T) {
	n := &markup.Node{Name: "Pane", Attrs: []markup.Attr{
		{Name: "a", Value: "1"}, {Name: "b", Value: "2"}, {Name: "c", Value: "3"}, {Name: "d", Value: "4"},
	}}
	assert.Equal(t, `Pane a="1" b="2" c="3" +1`, Label(n))
}
