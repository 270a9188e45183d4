package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestReadLinesBootstrapsMissingFile(t *testing.T) {
	store, err := Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	lines, err := store.ReadLines("medicines")
	require.NoError(t, err)
	assert.Empty(t, lines)

	// The file now exists, empty.
	_, err = os.Stat(filepath.Join(store.Dir(), "medicines"))
	assert.NoError(t, err)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	in := []string{"1|Paracetamol", "2|Amoxicillin"}
	require.NoError(t, store.WriteLines("medicines", in))

	out, err := store.ReadLines("medicines")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWriteLinesReplacesWholeFile(t *testing.T) {
	store, err := Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, store.WriteLines("orders", []string{"old-1", "old-2", "old-3"}))
	require.NoError(t, store.WriteLines("orders", []string{"new-1"}))

	out, err := store.ReadLines("orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"new-1"}, out)
}

func TestWriteLinesEmptyCollection(t *testing.T) {
	store, err := Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, store.WriteLines("patients", nil))
	out, err := store.ReadLines("patients")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestWriteLinesKeepsFileMode(t *testing.T) {
	store, err := Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	// A bootstrapped file and a saved file carry the same permissions.
	_, err = store.ReadLines("doctors")
	require.NoError(t, err)
	require.NoError(t, store.WriteLines("medicines", []string{"1|x"}))

	bootstrapped, err := os.Stat(filepath.Join(store.Dir(), "doctors"))
	require.NoError(t, err)
	saved, err := os.Stat(filepath.Join(store.Dir(), "medicines"))
	require.NoError(t, err)
	assert.Equal(t, bootstrapped.Mode().Perm(), saved.Mode().Perm())
	assert.Equal(t, os.FileMode(0o644), saved.Mode().Perm())
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	store, err := Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.WriteLines("medicines", []string{"1|x"}))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "medicines", entries[0].Name())
}
