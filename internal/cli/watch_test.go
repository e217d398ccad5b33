package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxpreview/internal/live"
	"fxpreview/internal/preview"
)

func TestWatch_RerendersOnExternalWrite(t *testing.T) {
	p := writeFile(t, t.TempDir(), "view.fxml", "<Alpha/>")

	ctx, cancel := context.WithCancel(context.Background())
	out, errOut := new(syncBuffer), new(syncBuffer)
	done := make(chan error, 1)

	go func() { done <- startCommand(ctx, out, errOut, "--debounce", "20ms", "watch", "--diff", p) }()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "Alpha") }, 3*time.Second, 10*time.Millisecond)

	// Let the watcher goroutine start draining events.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte("<Bravo/>"), 0o644))

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "Bravo") }, 3*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	got := out.String()
	assert.Contains(t, got, "+<Bravo/>")
	assert.Contains(t, got, "--- buffer")
}

func TestWatch_MarkupErrorKeepsWatching(t *testing.T) {
	p := writeFile(t, t.TempDir(), "view.fxml", "<Alpha>")

	ctx, cancel := context.WithCancel(context.Background())
	out, errOut := new(syncBuffer), new(syncBuffer)
	done := make(chan error, 1)

	go func() { done <- startCommand(ctx, out, errOut, "--debounce", "20ms", "watch", p) }()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "FXML Error: ") }, 3*time.Second, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte("<Alpha/>"), 0o644))

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "render (1 nodes") }, 3*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_MissingFile(t *testing.T) {
	_, _, err := executeCommand("watch", t.TempDir()+"/missing.fxml")
	requireExitCode(t, err, 1)
}

func TestWatch_UnsupportedExtension(t *testing.T) {
	p := writeFile(t, t.TempDir(), "notes.txt", "<A/>")

	_, _, err := executeCommand("watch", p)
	requireExitCode(t, err, 2)
}

// ---------------------------------------------------------------------------
// printer
// ---------------------------------------------------------------------------

func newTestPrinter(diff bool) (*printer, *bytes.Buffer) {
	var buf bytes.Buffer

	return &printer{
		out:     &buf,
		width:   defaultWidth,
		noColor: true,
		diff:    diff,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, &buf
}

func TestPrinter_SkippedPrintsNothing(t *testing.T) {
	p, buf := newTestPrinter(false)
	p.rendered(preview.Result{Skipped: true})
	assert.Empty(t, buf.String())
}

func TestPrinter_ReloadedDiffOnlyWhenAsked(t *testing.T) {
	r := live.Reload{Action: live.ReloadApplied, Path: "/x/view.fxml", Previous: "<A/>", Text: "<B/>"}

	p, buf := newTestPrinter(false)
	p.reloaded(r)
	assert.Empty(t, buf.String())

	p, buf = newTestPrinter(true)
	p.reloaded(r)
	assert.Contains(t, buf.String(), "-<A/>")
	assert.Contains(t, buf.String(), "+<B/>")
}

func TestPrinter_ConflictAlwaysDiffs(t *testing.T) {
	p, buf := newTestPrinter(false)
	p.conflict(live.Reload{Action: live.ReloadNeedsConfirm, Path: "/x/view.fxml", Previous: "<Mine/>\n", Text: "<Theirs/>\n"})

	assert.Contains(t, buf.String(), "+++ /x/view.fxml")
	assert.Contains(t, buf.String(), "-<Mine/>")
}

func TestPrinter_Failed(t *testing.T) {
	p, buf := newTestPrinter(false)
	p.failed(errors.New("reload /x/view.fxml: permission denied"))
	assert.Contains(t, buf.String(), "permission denied")
}

func TestUnifiedDiff_NoTrailingNewline(t *testing.T) {
	text, err := unifiedDiff(live.Reload{Path: "v.fxml", Previous: "a\nb", Text: "a\nc"})
	require.NoError(t, err)
	assert.Contains(t, text, "-b\n")
	assert.Contains(t, text, "+c\n")
}
