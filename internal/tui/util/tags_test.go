package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fxpreview/internal/markup"
	"fxpreview/internal/preview"
	"fxpreview/internal/tui/state"
)

func kinds(tags []state.Tag) []state.TagKind {
	out := make([]state.TagKind, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Kind)
	}
	return out
}

func TestComputeTags_Order(t *testing.T) {
	ok := preview.Result{Tree: &markup.Tree{Root: &markup.Node{Name: "A", Children: []*markup.Node{{Name: "B"}}}}}

	tags := ComputeTags(true, true, true, ok)
	assert.Equal(t, []state.TagKind{state.MODIFIED, state.AUTO, state.WATCHING, state.NODES}, kinds(tags))
	assert.Equal(t, 2, tags[len(tags)-1].Value)
}

func TestComputeTags_ManualHidesWatching(t *testing.T) {
	tags := ComputeTags(false, false, true, preview.Result{})
	assert.Equal(t, []state.TagKind{state.MANUAL}, kinds(tags))
}

func TestComputeTags_ErrorExcludesNodes(t *testing.T) {
	tags := ComputeTags(false, true, false, preview.Result{Err: preview.ErrorPrefix + "boom"})
	assert.Equal(t, []state.TagKind{state.AUTO, state.ERROR}, kinds(tags))
}

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")
	assert.True(t, NoColor(true))
	assert.False(t, NoColor(false))

	t.Setenv("TERM", "dumb")
	assert.True(t, NoColor(false))

	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "1")
	assert.True(t, NoColor(false))
}
