package tree

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSaveStampsModel(t *testing.T) {
	s := NewMemoryStore()
	m := &Model{Name: "play", Target: "play", Tree: playTree()}
	require.NoError(t, s.Save(context.Background(), m))
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestMemoryStoreSaveKeepsExistingID(t *testing.T) {
	s := NewMemoryStore()
	stamp := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	m := &Model{ID: "fixed", Target: "play", CreatedAt: stamp}
	require.NoError(t, s.Save(context.Background(), m))
	assert.Equal(t, "fixed", m.ID)
	assert.Equal(t, stamp, m.CreatedAt)
}

func TestMemoryStoreLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	m := &Model{Name: "play", Target: "play", Tree: playTree()}
	require.NoError(t, s.Save(ctx, m))
	loaded, err := s.Load(ctx, m.ID)
	require.NoError(t, err)
	assert.Same(t, m, loaded)
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	s := NewMemoryStore()
	loaded, err := s.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreListOldestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	newer := &Model{ID: "b", CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	older := &Model{ID: "a", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Save(ctx, newer))
	require.NoError(t, s.Save(ctx, older))
	models, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "a", models[0].ID)
	assert.Equal(t, "b", models[1].ID)
}

func TestMemoryStoreListBreaksTimeTiesByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	stamp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, &Model{ID: "z", CreatedAt: stamp}))
	require.NoError(t, s.Save(ctx, &Model{ID: "m", CreatedAt: stamp}))
	models, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "m", models[0].ID)
	assert.Equal(t, "z", models[1].ID)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	m := &Model{ID: "gone"}
	require.NoError(t, s.Save(ctx, m))
	require.NoError(t, s.Delete(ctx, "gone"))
	loaded, err := s.Load(ctx, "gone")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreHonorsContextCancellation(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Save(ctx, &Model{ID: "late"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
