package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a polling
// test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// executeCommand runs the CLI with args and captures stdout and stderr.
func executeCommand(args ...string) (stdout, stderr string, err error) {
	return executeCommandContext(context.Background(), args...)
}

func executeCommandContext(ctx context.Context, args ...string) (stdout, stderr string, err error) {
	out, errOut := new(syncBuffer), new(syncBuffer)
	err = startCommand(ctx, out, errOut, args...)

	return out.String(), errOut.String(), err
}

func startCommand(ctx context.Context, out, errOut *syncBuffer, args ...string) error {
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(new(bytes.Buffer))
	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.Code)
}

// ---------------------------------------------------------------------------
// Help and flags
// ---------------------------------------------------------------------------

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	require.NoError(t, err)

	for _, sub := range []string{"render", "watch", "version"} {
		assert.Contains(t, stdout, sub, "help should mention %q subcommand", sub)
	}

	for _, flag := range []string{"--config", "--log-level", "--log-file", "--debounce", "--extension", "--auto-refresh", "--no-color"} {
		assert.Contains(t, stdout, flag, "help should mention %q flag", flag)
	}
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	_, stderr, err := executeCommand("--nonexistent")
	requireExitCode(t, err, 2)
	assert.Empty(t, stderr, "errors are printed by Execute, not cobra")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, _, err := executeCommand("--config", filepath.Join(t.TempDir(), "missing.yaml"), "render", "a.fxml")
	requireExitCode(t, err, 2)
}

func TestRootCommand_InvalidDebounce(t *testing.T) {
	_, _, err := executeCommand("--debounce", "0s", "render", "a.fxml")
	requireExitCode(t, err, 2)
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	_, _, err := executeCommand("a.fxml", "b.fxml")
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// Non-terminal fallback
// ---------------------------------------------------------------------------

func TestRootCommand_NoTerminalNeedsFile(t *testing.T) {
	_, _, err := executeCommand()
	requireExitCode(t, err, 2)
	assert.ErrorContains(t, err, "file argument is required")
}

func TestRootCommand_NoTerminalWatches(t *testing.T) {
	p := writeFile(t, t.TempDir(), "view.fxml", `<VBox><Label text="hi"/></VBox>`)

	ctx, cancel := context.WithCancel(context.Background())
	out, errOut := new(syncBuffer), new(syncBuffer)
	done := make(chan error, 1)

	go func() { done <- startCommand(ctx, out, errOut, "--debounce", "20ms", p) }()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("VBox"))
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, out.String(), "render (2 nodes")
}

func TestLogFileReceivesLogs(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "view.fxml", "<VBox/>")
	logPath := filepath.Join(dir, "logs", "fx.log")

	_, stderr, err := executeCommand("--log-file", logPath, "--log-level", "debug", "render", p)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== fxpreview")
	assert.Contains(t, string(data), "configuration loaded")
}

func TestRootCommand_UnsupportedExtension(t *testing.T) {
	p := writeFile(t, t.TempDir(), "notes.txt", "<A/>")

	_, _, err := executeCommand(p)
	requireExitCode(t, err, 2)
}
