package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	p := writeFile(t, t.TempDir(), "main.fxml", "<VBox/>")

	doc, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, p, doc.Path())
	assert.Equal(t, "main.fxml", doc.Name())
	assert.Equal(t, filepath.Dir(p), doc.Dir())
	assert.Equal(t, "<VBox/>", doc.Text())
	assert.False(t, doc.Dirty())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.fxml"))
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "open", ioErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "could not open")
}

// ---------------------------------------------------------------------------
// Editing and saving
// ---------------------------------------------------------------------------

func TestNew_Unbound(t *testing.T) {
	doc := New()
	assert.Equal(t, "", doc.Path())
	assert.Equal(t, "untitled", doc.Name())
	assert.Equal(t, "", doc.Dir())
	assert.ErrorIs(t, doc.Save(), ErrNoPath)
}

func TestDirtyTracking(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.fxml", "one")

	doc, err := Load(p)
	require.NoError(t, err)

	doc.SetText("two")
	assert.True(t, doc.Dirty())
	assert.Equal(t, "one", doc.Saved())

	doc.SetText("one")
	assert.False(t, doc.Dirty())

	doc.SetText("three")
	require.NoError(t, doc.Save())
	assert.False(t, doc.Dirty())
	assert.Equal(t, "three", doc.Saved())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))
}

func TestReplace_ResetsBaseline(t *testing.T) {
	doc := New()
	doc.SetText("local edit")
	require.True(t, doc.Dirty())

	doc.Replace("from disk")
	assert.Equal(t, "from disk", doc.Text())
	assert.False(t, doc.Dirty())
}

func TestSaveAs_BindsPath(t *testing.T) {
	dir := t.TempDir()
	doc := New()
	doc.SetText("<Pane/>")

	target := filepath.Join(dir, "out.fxml")
	require.NoError(t, doc.SaveAs(target))
	assert.Equal(t, target, doc.Path())
	assert.False(t, doc.Dirty())

	doc.SetText("<Pane></Pane>")
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "<Pane></Pane>", string(data))
}

func TestSaveAs_Failure(t *testing.T) {
	doc := New()
	doc.SetText("x")

	err := doc.SaveAs(filepath.Join(t.TempDir(), "missing", "dir", "x.fxml"))
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "save", ioErr.Op)
	assert.Equal(t, "", doc.Path(), "failed save-as must not bind the path")
	assert.True(t, doc.Dirty())
}

// ---------------------------------------------------------------------------
// Extension helpers
// ---------------------------------------------------------------------------

func TestWithExtension(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"view", ".fxml", "view.fxml"},
		{"view.fxml", ".fxml", "view.fxml"},
		{"view.FXML", ".fxml", "view.FXML"},
		{"view.xml", ".fxml", "view.xml.fxml"},
		{"view", "", "view"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, WithExtension(tt.path, tt.ext))
		})
	}
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("/a/b.fxml", ".fxml"))
	assert.True(t, HasExtension("B.FXML", ".fxml"))
	assert.False(t, HasExtension("b.xml", ".fxml"))
}
