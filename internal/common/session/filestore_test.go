package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Tenant())

	require.NoError(t, s.SetSession("tok-123", "tenant-9"))
	assert.Equal(t, "tok-123", s.Token())
	assert.Equal(t, "tenant-9", s.Tenant())

	// a new store against the same file sees the persisted session
	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", reloaded.Token())
	assert.Equal(t, "tenant-9", reloaded.Tenant())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Tenant())

	reloaded, err = NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Token())
	assert.Empty(t, reloaded.Tenant())
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetSession("tok", "tenant"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Tenant())

	require.NoError(t, s.SetSession("a", "b"))
	assert.Equal(t, "a", s.Token())
	assert.Equal(t, "b", s.Tenant())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Tenant())
}
