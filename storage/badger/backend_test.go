package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}

func TestOpenRepositories(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	require.NotNil(t, repos.Chunks)
	require.NotNil(t, repos.Documents)
	require.NotNil(t, repos.Config)
	require.NotNil(t, repos.Selections)
	require.NotNil(t, repos.Runs)

	require.NoError(t, repos.Close())
	assert.True(t, repos.Backend().IsClosed())
}
