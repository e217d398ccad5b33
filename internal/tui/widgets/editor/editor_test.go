package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fxpreview/internal/tui/state"
)

func TestHeader(t *testing.T) {
	e := NewEditor()
	assert.Equal(t, "untitled", e.Header(state.UIState{}, true))
	assert.Equal(t, "form.fxml *", e.Header(state.UIState{Name: "form.fxml", Dirty: true}, true))
}

func TestFrameContainsBody(t *testing.T) {
	out := NewEditor().Frame("hello", true, 20, 5, true)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "╭")
}
