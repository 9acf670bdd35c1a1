package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCreatesAndExtends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	first := NewEntry("in one", "out one", map[string]bool{"humanize": true})
	require.NoError(t, Append(path, first))

	second := NewEntry("in two", "out two", map[string]bool{"paraphrase": true})
	require.NoError(t, Append(path, second))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "out one", entries[0].Output)
	assert.Equal(t, "in two", entries[1].Input)
	assert.True(t, entries[1].OptionsApplied["paraphrase"])
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestAppendNoEntriesIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, Append(path))
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAppendRequiresPath(t *testing.T) {
	assert.Error(t, Append("", NewEntry("a", "b", nil)))
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	entries, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewEntryCopiesOptions(t *testing.T) {
	applied := map[string]bool{"humanize": true}
	entry := NewEntry("in", "out", applied)
	applied["humanize"] = false
	assert.True(t, entry.OptionsApplied["humanize"])
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
}
