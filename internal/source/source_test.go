package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("Furthermore, it works.\n\n"), 0o644))

	text, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Furthermore, it works.", text)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", MaxBytes+1)), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLoadInvalidPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}

func TestRead(t *testing.T) {
	text, err := Read(strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := Watch(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	select {
	case _, ok := <-w.Changes():
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	text, err := Load(w.Path())
	require.NoError(t, err)
	assert.Equal(t, "v2", text)
}

func TestWatcherCloseEndsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := Watch(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("changes channel not closed")
	}
}
