package world

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelworks/terragen/internal/worldgen"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../db/migrations/000001_create_worlds.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func smallSettings() worldgen.Settings {
	s := worldgen.DefaultSettings()
	s.Width = 10
	s.Length = 10
	s.MaxHeight = 64
	return s
}

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(testDB(t))
	ctx := context.Background()

	created, err := m.Create(ctx, "first world", 42, smallSettings(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "first world", created.Name)
	assert.Equal(t, int32(42), created.Seed)
	assert.Equal(t, int64(len(created.Voxels)), created.VoxelCount)
	assert.NotZero(t, created.VoxelCount)

	loaded, err := m.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Summary.ID, loaded.Summary.ID)
	assert.Equal(t, created.Settings, loaded.Settings)
	assert.ElementsMatch(t, created.Voxels, loaded.Voxels)
}

func TestManagerGetNotFound(t *testing.T) {
	m := NewManager(testDB(t))
	_, err := m.Get(context.Background(), "no-such-id")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestManagerList(t *testing.T) {
	m := NewManager(testDB(t))
	ctx := context.Background()

	_, err := m.Create(ctx, "alpha", 1, smallSettings(), nil)
	require.NoError(t, err)
	_, err = m.Create(ctx, "beta", 2, smallSettings(), nil)
	require.NoError(t, err)

	summaries, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	names := []string{summaries[0].Name, summaries[1].Name}
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)
	for _, s := range summaries {
		assert.NotZero(t, s.VoxelCount)
		assert.Empty(t, s.Warnings)
	}
}

func TestManagerDelete(t *testing.T) {
	m := NewManager(testDB(t))
	ctx := context.Background()

	created, err := m.Create(ctx, "doomed", 7, smallSettings(), nil)
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, created.ID))
	_, err = m.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, m.Delete(ctx, created.ID), ErrNotFound)
}

func TestManagerCreateInvalidSettings(t *testing.T) {
	m := NewManager(testDB(t))
	s := smallSettings()
	s.Width = 0
	_, err := m.Create(context.Background(), "broken", 1, s, nil)
	require.Error(t, err)

	summaries, err := m.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries, "failed generation must not persist anything")
}
