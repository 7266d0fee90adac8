package vector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/audiosim/engine"
	"github.com/viant/audiosim/feature"
	"github.com/viant/audiosim/source"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := engine.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLiteStore(context.Background(), db)
	require.NoError(t, err)
	return store
}

// TestSQLiteStore_PutListLoadRemove exercises the catalog round trip.
func TestSQLiteStore_PutListLoadRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	records := []*feature.Record{
		{ID: "d1", Data: []feature.Frame{{Values: []float64{99, 1, 2}}}},
		{ID: "d2", Data: []feature.Frame{{Values: []float64{0, 3, 4}}, {Values: []float64{7}}}},
		{ID: "d3"},
	}
	ids, err := store.Put(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2", "d3"}, ids)

	listed, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2", "d3"}, listed)

	rec, err := store.Load(ctx, "d2")
	require.NoError(t, err)
	assert.Equal(t, "d2", rec.ID)
	require.Len(t, rec.Data, 2)
	assert.Equal(t, []float64{0, 3, 4}, rec.Data[0].Values)
	assert.Equal(t, []float64{7}, rec.Data[1].Values)

	vec, err := feature.Extract(rec)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, vec)

	empty, err := store.Load(ctx, "d3")
	require.NoError(t, err)
	_, err = feature.Extract(empty)
	require.ErrorIs(t, err, feature.ErrNoFeatures)

	// Upsert replaces frames.
	_, err = store.Put(ctx, []*feature.Record{{ID: "d1", Data: []feature.Frame{{Values: []float64{0, 5}}}}})
	require.NoError(t, err)
	rec, err = store.Load(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5}, rec.Data[0].Values)

	require.NoError(t, store.Remove(ctx, "d2"))
	_, err = store.Load(ctx, "d2")
	require.ErrorIs(t, err, source.ErrNotFound)
	listed, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d3"}, listed)
}

func TestSQLiteStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Put(ctx, []*feature.Record{{ID: ""}})
	require.Error(t, err)
	require.Error(t, store.Remove(ctx, ""))

	_, err = store.db.ExecContext(ctx, `INSERT INTO features(id, frames) VALUES('broken', X'0500000001')`)
	require.NoError(t, err)
	_, err = store.Load(ctx, "broken")
	require.ErrorIs(t, err, source.ErrMalformed)

	_, err = NewSQLiteStore(ctx, nil)
	require.Error(t, err)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	files := map[string]string{
		"a.json":   `{"data":[{"values":[0, 1, 1]}]}`,
		"b.json":   `{"data":[{"values":[0, 2, 2]}]}`,
		"bad.json": `{"data":[{"values":`,
		"e.json":   `{"data":[]}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	store := newTestStore(t)

	stats, err := Import(ctx, store, source.NewDir(dir, "*.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Imported: 3, Skipped: 1}, stats)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "e.json"),
	}, ids)
}
