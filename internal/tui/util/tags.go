package util

import (
	"fxpreview/internal/preview"
	"fxpreview/internal/tui/state"
)

// ComputeTags calculates the status chips for the open document.
//
// The returned slice preserves a stable order:
//
//	Modified, Auto|Manual, Watching, Error, Nodes
//
// Rules:
//   - Modified reflects unsaved edits.
//   - Exactly one of Auto and Manual is present.
//   - Watching is only meaningful while auto-refresh is on.
//   - Error and Nodes are mutually exclusive and describe the last render;
//     neither is present before the first render.
func ComputeTags(dirty, auto, watching bool, last preview.Result) []state.Tag {
	tags := make([]state.Tag, 0, 5)

	if dirty {
		tags = append(tags, state.Tag{Kind: state.MODIFIED})
	}

	if auto {
		tags = append(tags, state.Tag{Kind: state.AUTO})
	} else {
		tags = append(tags, state.Tag{Kind: state.MANUAL})
	}

	if auto && watching {
		tags = append(tags, state.Tag{Kind: state.WATCHING})
	}

	switch {
	case last.Err != "":
		tags = append(tags, state.Tag{Kind: state.ERROR})
	case last.OK():
		tags = append(tags, state.Tag{Kind: state.NODES, Value: last.Tree.Root.Count()})
	}

	return tags
}
