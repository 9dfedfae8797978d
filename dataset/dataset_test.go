package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassCountsFirstSeenOrder(t *testing.T) {
	records := []Record{
		{"y": "b"},
		{"y": "a"},
		{"y": "b"},
		{"y": "c"},
		{"y": "a"},
	}
	labels, counts := ClassCounts(records, "y")
	assert.Equal(t, []string{"b", "a", "c"}, labels)
	assert.Equal(t, map[string]int{"a": 2, "b": 2, "c": 1}, counts)
}

func TestClassCountsIgnoresMissingValues(t *testing.T) {
	records := []Record{
		{"y": "a"},
		{"x": 1.0},
		{"y": nil},
	}
	labels, counts := ClassCounts(records, "y")
	assert.Equal(t, []string{"a"}, labels)
	assert.Equal(t, 1, counts["a"])
}

func TestClassCountsStringifiesValues(t *testing.T) {
	records := []Record{
		{"y": 1.0},
		{"y": 1.0},
		{"y": 2.0},
	}
	labels, counts := ClassCounts(records, "y")
	require.Len(t, labels, 2)
	assert.Equal(t, 2, counts["1"])
	assert.Equal(t, 1, counts["2"])
}

func TestDatasetHasColumn(t *testing.T) {
	ds := New([]string{"x", "y"}, nil)
	assert.True(t, ds.HasColumn("x"))
	assert.False(t, ds.HasColumn("z"))
}

func TestDatasetCount(t *testing.T) {
	ds := New([]string{"x"}, []Record{{"x": 1.0}, {"x": 2.0}})
	assert.Equal(t, 2, ds.Count())
}
