package sqldataset_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/sqldataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/sqldataset/sqlite3adapter"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFeatures() []feature.Feature {
	return []feature.Feature{
		feature.NewNumericFeature("age"),
		feature.NewCategoricalFeature("color", []string{"red", "blue"}),
		feature.NewCategoricalFeature("label", []string{"yes", "no"}),
	}
}

// 12 records, so that writing exercises both a full insertion chunk
// and a partial last one.
func testRecords() []dataset.Record {
	colors := []string{"red", "blue"}
	var records []dataset.Record
	for i := 0; i < 12; i++ {
		label := "yes"
		if i >= 7 {
			label = "no"
		}
		records = append(records, dataset.Record{
			"age":   float64(20 + i),
			"color": colors[i%2],
			"label": label,
		})
	}
	return records
}

func newTestSet(t *testing.T) *sqldataset.Set {
	t.Helper()
	adapter, err := sqlite3adapter.New(filepath.Join(t.TempDir(), "dataset.db"))
	require.NoError(t, err)
	s, err := sqldataset.Create(context.Background(), adapter, testFeatures())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetWriteAndDataset(t *testing.T) {
	ctx := context.Background()
	s := newTestSet(t)
	records := testRecords()

	n, err := s.Write(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(records), count)

	ds, skipped, err := s.Dataset(ctx)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []string{"age", "color", "label"}, ds.Columns)
	assert.Equal(t, records, ds.Records)
}

func TestSetDatasetSkipsIncompleteRecords(t *testing.T) {
	ctx := context.Background()
	s := newTestSet(t)

	_, err := s.Write(ctx, []dataset.Record{
		{"age": 31.0, "color": "red", "label": "yes"},
		{"age": 45.0, "label": "no"},
		{"age": 28.0, "color": "blue", "label": "no"},
	})
	require.NoError(t, err)

	ds, skipped, err := s.Dataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, 31.0, ds.Records[0]["age"])
	assert.Equal(t, 28.0, ds.Records[1]["age"])

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSetRead(t *testing.T) {
	ctx := context.Background()
	s := newTestSet(t)
	records := testRecords()
	_, err := s.Write(ctx, records)
	require.NoError(t, err)

	recordc, errc := s.Read(ctx)
	var got []dataset.Record
	for r := range recordc {
		got = append(got, r)
	}
	require.NoError(t, <-errc)
	assert.Equal(t, records, got)
}

func TestSetReadCancelled(t *testing.T) {
	s := newTestSet(t)
	_, err := s.Write(context.Background(), testRecords())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recordc, errc := s.Read(ctx)
	for range recordc {
	}
	err = <-errc
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestSetCountValues(t *testing.T) {
	ctx := context.Background()
	s := newTestSet(t)
	_, err := s.Write(ctx, testRecords())
	require.NoError(t, err)

	counts, err := s.CountValues(ctx, "color")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"red": 6, "blue": 6}, counts)

	counts, err = s.CountValues(ctx, "label")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"yes": 7, "no": 5}, counts)

	_, err = s.CountValues(ctx, "age")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not categorical")

	_, err = s.CountValues(ctx, "height")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature")
}

func TestSetWriteRejectsInvalidValues(t *testing.T) {
	ctx := context.Background()
	s := newTestSet(t)

	n, err := s.Write(ctx, []dataset.Record{{"age": 30.0, "color": "green", "label": "yes"}})
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "unknown value green")

	n, err = s.Write(ctx, []dataset.Record{{"age": "thirty", "color": "red", "label": "yes"}})
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "expects float64 value")
}

func TestCreateRejectsUnusableFeatures(t *testing.T) {
	ctx := context.Background()

	adapter, err := sqlite3adapter.New(filepath.Join(t.TempDir(), "dataset.db"))
	require.NoError(t, err)
	defer adapter.Close()

	_, err = sqldataset.Create(ctx, adapter, []feature.Feature{feature.NewNumericFeature("id")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")

	_, err = sqldataset.Create(ctx, adapter, []feature.Feature{
		feature.NewNumericFeature("age"),
		feature.NewCategoricalFeature("age", []string{"young", "old"}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collide")
}

func TestOpenExistingDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "dataset.db")
	records := testRecords()[:3]

	adapter, err := sqlite3adapter.New(dbPath)
	require.NoError(t, err)
	s, err := sqldataset.Create(ctx, adapter, testFeatures())
	require.NoError(t, err)
	_, err = s.Write(ctx, records)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	adapter, err = sqlite3adapter.New(dbPath)
	require.NoError(t, err)
	s, err = sqldataset.Open(adapter, testFeatures())
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, testFeatures(), s.Features())
	ds, skipped, err := s.Dataset(ctx)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, records, ds.Records)
}
