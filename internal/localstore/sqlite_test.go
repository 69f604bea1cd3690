package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dbPath
}

func TestSQLiteStore_MissingKey(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_SetThenGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Set(ctx, "cursor/u1/listings", "1700000000000"))

	value, ok, err := s.Get(ctx, "cursor/u1/listings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1700000000000", value)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Set(ctx, "k", "first"))
	require.NoError(t, s.Set(ctx, "k", "second"))

	value, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	s, dbPath := newTestStore(t)

	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestSQLiteStore_MigrationsIdempotentOnReopen(t *testing.T) {
	s, dbPath := newTestStore(t)
	require.NoError(t, s.Close())

	// Reopening must not try to re-apply an already-applied migration.
	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	assert.NoError(t, reopened.Close())
}

func TestSQLiteStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Set(ctx, "hidden/u1/listings", `["a"]`))
	require.NoError(t, s.Set(ctx, "hidden/u2/listings", `["b"]`))

	value, ok, err := s.Get(ctx, "hidden/u1/listings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["a"]`, value)
}
