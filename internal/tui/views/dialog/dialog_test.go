package dialog

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out := Render(Danger, "Error", "Could not open file", "enter: ok", 60, true)

	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "Could not open file")
	assert.Contains(t, out, "enter: ok")
	assert.True(t, strings.HasPrefix(out, "╭"))
}

func TestRenderWrapsToWidth(t *testing.T) {
	out := Render(Info, "T", strings.Repeat("word ", 40), "", 40, true)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}
