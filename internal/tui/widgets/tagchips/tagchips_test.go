package tagchips

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fxpreview/internal/tui/state"
)

func TestViewNoColor(t *testing.T) {
	tags := []state.Tag{
		{Kind: state.MODIFIED},
		{Kind: state.AUTO},
		{Kind: state.WATCHING},
		{Kind: state.NODES, Value: 7},
	}

	assert.Equal(t, "[Modified] [Auto] [Watching] [Nodes 7]", View(tags, true))
}

func TestViewEmpty(t *testing.T) {
	assert.Empty(t, View(nil, true))
}

func TestViewColorContainsLabels(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	out := View([]state.Tag{{Kind: state.ERROR}, {Kind: state.MANUAL}}, false)
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "Manual")
	assert.NotContains(t, out, "[Error]")
}
