package badger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	assert.False(t, backend.IsClosed())

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestOpenBackend_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "db")

	backend, err := OpenBackend(path, false)
	require.NoError(t, err)
	defer backend.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_PathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := OpenBackend(path, false)
	assert.Error(t, err)
}

func TestOpenBackend_Reopen(t *testing.T) {
	path := t.TempDir()

	backend, err := OpenBackend(path, false)
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	// Opening an existing directory again must succeed.
	backend, err = OpenBackend(path, false)
	require.NoError(t, err)
	require.NoError(t, backend.Close())
}
