package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportanceWeighsSamplesDepthAndGain(t *testing.T) {
	w := playTree().Importance()
	require.Len(t, w, 2)

	// outlook at the root: (19/100) * 0.9^0 * 0.25 = 0.0475
	// humidity one level down: (14/100) * 0.9^1 * 0.42 = 0.05292
	assert.Equal(t, "humidity", w[0].Feature)
	assert.InDelta(t, 0.05292/0.10042, w[0].Weight, 1e-9)
	assert.Equal(t, "outlook", w[1].Feature)
	assert.InDelta(t, 0.0475/0.10042, w[1].Weight, 1e-9)
}

func TestImportanceSumsToOne(t *testing.T) {
	w := playTree().Importance()
	var total float64
	for _, fw := range w {
		total += fw.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestImportanceAccumulatesRepeatedFeatures(t *testing.T) {
	leaf := func() *Node { return &Node{Label: "x", Samples: 10} }
	again := &Node{
		Split:      &Split{Feature: "a", Kind: Numeric, Threshold: 2},
		Left:       leaf(),
		Right:      leaf(),
		Confidence: 0.5,
		Samples:    40,
	}
	root := &Node{
		Split:      &Split{Feature: "a", Kind: Numeric, Threshold: 5},
		Left:       again,
		Right:      leaf(),
		Confidence: 0.3,
		Samples:    100,
	}
	w := New(root, "y").Importance()
	require.Len(t, w, 1)
	assert.Equal(t, "a", w[0].Feature)
	assert.InDelta(t, 1.0, w[0].Weight, 1e-9)
}

func TestImportanceTieKeepsFirstSeenOrder(t *testing.T) {
	leaf := func() *Node { return &Node{Label: "x", Samples: 10} }
	b := &Node{
		Split:      &Split{Feature: "b", Kind: Numeric, Threshold: 1},
		Left:       leaf(),
		Right:      leaf(),
		Confidence: 0.5,
		Samples:    50,
	}
	c := &Node{
		Split:      &Split{Feature: "c", Kind: Numeric, Threshold: 1},
		Left:       leaf(),
		Right:      leaf(),
		Confidence: 0.5,
		Samples:    50,
	}
	root := &Node{
		Split:      &Split{Feature: "a", Kind: Numeric, Threshold: 2},
		Left:       b,
		Right:      c,
		Confidence: 0.9,
		Samples:    100,
	}
	w := New(root, "y").Importance()
	require.Len(t, w, 3)
	assert.Equal(t, "a", w[0].Feature)
	assert.Equal(t, "b", w[1].Feature)
	assert.Equal(t, "c", w[2].Feature)
	assert.InDelta(t, w[1].Weight, w[2].Weight, 1e-12)
}

func TestImportanceOfSingleLeaf(t *testing.T) {
	tr := New(&Node{Label: "yes", Confidence: 1, Samples: 10}, "y")
	assert.Empty(t, tr.Importance())
}

func TestImportanceWithoutTree(t *testing.T) {
	assert.Nil(t, (*Tree)(nil).Importance())
}
