package reader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ds := testDataset()

	require.NoError(t, store.PutDataset(ctx, ds))
	got, err := store.GetDataset(ctx, ds.Path)
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.GetDataset(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMemoryStore_PutRejectsInvalid(t *testing.T) {
	store := NewMemoryStore()
	ds := testDataset()
	ds.Values = ds.Values[:3]
	assert.Error(t, store.PutDataset(context.Background(), ds))
}

func TestMemoryStore_ListDatasets(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	paths, err := store.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Empty(t, paths)

	require.NoError(t, store.PutDataset(ctx, testDataset()))
	paths, err = store.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestMemoryStore_LogIngest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	run := IngestRun{ID: "run-1", Path: "p", Source: "s.csv", Cells: 8, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.LogIngest(ctx, run))

	got := store.Ingests()
	require.Len(t, got, 1)
	assert.Equal(t, run, got[0])
}
