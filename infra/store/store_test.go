package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/eventplan/config"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sq, err := NewSQLiteStore(filepath.Join(dir, "slot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "nested", "autosave.eventplan.json")),
		"sqlite": sq,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok, "fresh slot must be empty")

			require.NoError(t, s.Save(ctx, []byte(`{"v":1}`)))
			require.NoError(t, s.Save(ctx, []byte(`{"v":2}`)))
			got, ok, err := s.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `{"v":2}`, string(got))

			require.NoError(t, s.Clear(ctx))
			require.NoError(t, s.Clear(ctx))
			_, ok, err = s.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "slot.json"))
	require.NoError(t, s.Save(context.Background(), []byte("data")))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "slot.json", entries[0].Name())
}

func TestFileStoreHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewFileStore(filepath.Join(t.TempDir(), "slot.json"))
	assert.ErrorIs(t, s.Save(ctx, []byte("x")), context.Canceled)
	_, _, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slot.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, []byte("persisted")))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", string(got))
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	s, err := New(config.StoreConfig{Backend: config.StoreFile, Path: filepath.Join(dir, "a.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = New(config.StoreConfig{Backend: config.StoreSQLite, Path: filepath.Join(dir, "a.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = New(config.StoreConfig{Backend: "redis", Path: "x"})
	assert.Error(t, err)

	assert.Equal(t, []string{"file", "sqlite"}, Backends())
}
