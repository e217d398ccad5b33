package state

// TagKind enumerates the status chips shown next to the document name.
type TagKind int

const (
	// Stable ordering for display: Modified, Auto, Manual, Watching, Error, Nodes
	MODIFIED TagKind = iota
	AUTO
	MANUAL
	WATCHING
	ERROR
	NODES
)

// Tag represents a single status chip. Value is used for numeric counters
// (e.g., node count). Non-numeric tags use Value = 0.
type Tag struct {
	Kind  TagKind
	Value int
}
