package xai

import (
	"testing"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clustersDataset() *dataset.Dataset {
	return dataset.New([]string{"x", "y"}, []dataset.Record{
		{"x": 1.0, "y": "a"},
		{"x": 2.0, "y": "a"},
		{"x": 8.0, "y": "b"},
		{"x": 9.0, "y": "b"},
		{"x": 10.0, "y": "b"},
	})
}

func weatherDataset() *dataset.Dataset {
	columns := []string{"outlook", "temperature", "humidity", "windy", "play"}
	rows := [][]interface{}{
		{"sunny", 85.0, 85.0, "false", "no"},
		{"sunny", 80.0, 90.0, "true", "no"},
		{"overcast", 83.0, 86.0, "false", "yes"},
		{"rainy", 70.0, 96.0, "false", "yes"},
		{"rainy", 68.0, 80.0, "false", "yes"},
		{"rainy", 65.0, 70.0, "true", "no"},
		{"overcast", 64.0, 65.0, "true", "yes"},
		{"sunny", 72.0, 95.0, "false", "no"},
		{"sunny", 69.0, 70.0, "false", "yes"},
		{"rainy", 75.0, 80.0, "false", "yes"},
		{"sunny", 75.0, 70.0, "true", "yes"},
		{"overcast", 72.0, 90.0, "true", "yes"},
		{"overcast", 81.0, 75.0, "false", "yes"},
		{"rainy", 71.0, 91.0, "true", "no"},
	}
	records := make([]dataset.Record, 0, len(rows))
	for _, row := range rows {
		r := dataset.Record{}
		for i, c := range columns {
			r[c] = row[i]
		}
		records = append(records, r)
	}
	return dataset.New(columns, records)
}

func TestGrowSeparatesTwoClusters(t *testing.T) {
	g := NewGrower("y")
	g.MaxDepth = 2
	tr, err := g.Grow(clustersDataset())
	require.NoError(t, err)
	require.NotNil(t, tr)

	root := tr.Root
	require.False(t, root.IsLeaf())
	assert.Equal(t, "x", root.Split.Feature)
	assert.Equal(t, tree.Numeric, root.Split.Kind)
	assert.InDelta(t, 2.0, root.Split.Threshold, 1e-9)
	assert.Greater(t, root.Confidence, 0.0)
	assert.Equal(t, 5, root.Samples)

	require.True(t, root.Left.IsLeaf())
	assert.Equal(t, "a", root.Left.Label)
	assert.Equal(t, 1.0, root.Left.Confidence)
	assert.Equal(t, 2, root.Left.Samples)

	require.True(t, root.Right.IsLeaf())
	assert.Equal(t, "b", root.Right.Label)
	assert.Equal(t, 1.0, root.Right.Confidence)
	assert.Equal(t, 3, root.Right.Samples)

	p, err := tr.Predict(dataset.Record{"x": 1.5})
	require.NoError(t, err)
	assert.Equal(t, "a", p.Label)
	p, err = tr.Predict(dataset.Record{"x": 9.5})
	require.NoError(t, err)
	assert.Equal(t, "b", p.Label)
}

func TestGrowTooFewRecords(t *testing.T) {
	ds := dataset.New([]string{"x", "y"}, []dataset.Record{
		{"x": 1.0, "y": "a"},
		{"x": 2.0, "y": "a"},
		{"x": 8.0, "y": "b"},
		{"x": 9.0, "y": "b"},
	})
	tr, err := Grow(ds, "y")
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestGrowUniformLabels(t *testing.T) {
	ds := dataset.New([]string{"x", "y"}, []dataset.Record{
		{"x": 1.0, "y": "a"},
		{"x": 2.0, "y": "a"},
		{"x": 5.0, "y": "a"},
		{"x": 8.0, "y": "a"},
		{"x": 9.0, "y": "a"},
		{"x": 10.0, "y": "a"},
	})
	tr, err := Grow(ds, "y")
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.True(t, tr.Root.IsLeaf())
	assert.Equal(t, "a", tr.Root.Label)
	assert.Equal(t, 1.0, tr.Root.Confidence)
	assert.Equal(t, 6, tr.Root.Samples)
}

func TestGrowMissingTarget(t *testing.T) {
	_, err := Grow(clustersDataset(), "label")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingTarget)
	_, err = Grow(nil, "y")
	assert.ErrorIs(t, err, ErrMissingTarget)
}

func TestGrowIsDeterministic(t *testing.T) {
	first, err := Grow(weatherDataset(), "play")
	require.NoError(t, err)
	second, err := Grow(weatherDataset(), "play")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGrowRespectsMaxDepth(t *testing.T) {
	g := NewGrower("play")
	g.MaxDepth = 1
	tr, err := g.Grow(weatherDataset())
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.False(t, tr.Root.IsLeaf())
	assert.True(t, tr.Root.Left.IsLeaf())
	assert.True(t, tr.Root.Right.IsLeaf())
}

func checkNodeInvariants(t *testing.T, n *tree.Node) {
	t.Helper()
	if n.IsLeaf() {
		var majority, total int
		for _, c := range n.Distribution {
			total += c
			if c > majority {
				majority = c
			}
		}
		require.GreaterOrEqual(t, n.Confidence, 0.0)
		require.LessOrEqual(t, n.Confidence, 1.0)
		if total > 0 {
			require.InDelta(t, float64(majority)/float64(total), n.Confidence, 1e-9)
		}
		return
	}
	require.NotNil(t, n.Left)
	require.NotNil(t, n.Right)
	require.Equal(t, n.Samples, n.Left.Samples+n.Right.Samples)
	for label, count := range n.Distribution {
		require.Equal(t, count, n.Left.Distribution[label]+n.Right.Distribution[label],
			"distribution of %q", label)
	}
	checkNodeInvariants(t, n.Left)
	checkNodeInvariants(t, n.Right)
}

func TestGrowPreservesDistributionInvariants(t *testing.T) {
	tr, err := Grow(weatherDataset(), "play")
	require.NoError(t, err)
	require.NotNil(t, tr)
	checkNodeInvariants(t, tr.Root)
}

func TestGrowCategoricalSplit(t *testing.T) {
	ds := dataset.New([]string{"color", "grade"}, []dataset.Record{
		{"color": "red", "grade": "x"},
		{"color": "red", "grade": "x"},
		{"color": "red", "grade": "x"},
		{"color": "blue", "grade": "y"},
		{"color": "blue", "grade": "y"},
		{"color": "green", "grade": "y"},
	})
	tr, err := Grow(ds, "grade")
	require.NoError(t, err)
	require.NotNil(t, tr)
	root := tr.Root
	require.False(t, root.IsLeaf())
	assert.Equal(t, "color", root.Split.Feature)
	assert.Equal(t, tree.Categorical, root.Split.Kind)
	assert.Equal(t, "red", root.Split.Category)
	assert.Equal(t, "x", root.Left.Label)
	assert.Equal(t, "y", root.Right.Label)
}

func TestGrowSkipsExcludedColumns(t *testing.T) {
	ds := dataset.New([]string{"id", "x", "y"}, []dataset.Record{
		{"id": 1.0, "x": 1.0, "y": "a"},
		{"id": 2.0, "x": 2.0, "y": "a"},
		{"id": 3.0, "x": 8.0, "y": "b"},
		{"id": 4.0, "x": 9.0, "y": "b"},
		{"id": 5.0, "x": 10.0, "y": "b"},
	})
	g := NewGrower("y")
	g.Excluded = []string{"id"}
	tr, err := g.Grow(ds)
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.False(t, tr.Root.IsLeaf())
	assert.Equal(t, "x", tr.Root.Split.Feature)
}

func TestGrowGainFloorCollapsesToLeaf(t *testing.T) {
	g := NewGrower("y")
	g.MinGain = 0.99
	tr, err := g.Grow(clustersDataset())
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.True(t, tr.Root.IsLeaf())
	assert.Equal(t, "b", tr.Root.Label)
	assert.InDelta(t, 0.6, tr.Root.Confidence, 1e-9)
	assert.Equal(t, 5, tr.Root.Samples)
}

func TestGrowLeafTieKeepsFirstSeenLabel(t *testing.T) {
	ds := dataset.New([]string{"x", "y"}, []dataset.Record{
		{"x": 3.0, "y": "a"},
		{"x": 3.0, "y": "b"},
		{"x": 3.0, "y": "b"},
		{"x": 3.0, "y": "a"},
		{"x": 3.0, "y": "a"},
		{"x": 3.0, "y": "b"},
	})
	tr, err := Grow(ds, "y")
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.True(t, tr.Root.IsLeaf())
	assert.Equal(t, "a", tr.Root.Label)
	assert.InDelta(t, 0.5, tr.Root.Confidence, 1e-9)
}

func TestGrowerZeroValuesGetDefaults(t *testing.T) {
	g := &Grower{Target: "y"}
	tr, err := g.Grow(clustersDataset())
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, DefaultMaxDepth, g.withDefaults().MaxDepth)
	assert.Equal(t, DefaultMinSamples, g.withDefaults().MinSamples)
	assert.Equal(t, DefaultMinGain, g.withDefaults().MinGain)
}
