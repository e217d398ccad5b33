// Package watch notifies the previewer when the open file changes on disk.
// It watches the file's directory with fsnotify, keeps at most one
// registration at a time, and filters events down to the single file name
// of interest.
package watch
