package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func playTree() *Tree {
	cool := &Node{
		Label:        "yes",
		Confidence:   1.0,
		Samples:      6,
		Distribution: map[string]int{"yes": 6},
	}
	warm := &Node{
		Label:        "no",
		Confidence:   0.75,
		Samples:      8,
		Distribution: map[string]int{"no": 6, "yes": 2},
	}
	humidity := &Node{
		Split:        &Split{Feature: "humidity", Kind: Numeric, Threshold: 70},
		Left:         cool,
		Right:        warm,
		Confidence:   0.42,
		Samples:      14,
		Distribution: map[string]int{"yes": 8, "no": 6},
	}
	overcast := &Node{
		Label:        "yes",
		Confidence:   0.8,
		Samples:      5,
		Distribution: map[string]int{"yes": 4, "no": 1},
	}
	root := &Node{
		Split:        &Split{Feature: "outlook", Kind: Categorical, Category: "sunny"},
		Left:         humidity,
		Right:        overcast,
		Confidence:   0.25,
		Samples:      19,
		Distribution: map[string]int{"yes": 12, "no": 7},
	}
	return New(root, "play")
}

func TestNodeIsLeaf(t *testing.T) {
	tr := playTree()
	assert.False(t, tr.Root.IsLeaf())
	assert.False(t, tr.Root.Left.IsLeaf())
	assert.True(t, tr.Root.Left.Left.IsLeaf())
	assert.True(t, tr.Root.Right.IsLeaf())
}

func TestSplitCondition(t *testing.T) {
	numeric := &Split{Feature: "humidity", Kind: Numeric, Threshold: 70.5}
	assert.Equal(t, "humidity <= 70.5", numeric.Condition(true))
	assert.Equal(t, "humidity > 70.5", numeric.Condition(false))
	categorical := &Split{Feature: "outlook", Kind: Categorical, Category: "sunny"}
	assert.Equal(t, "outlook = sunny", categorical.Condition(true))
	assert.Equal(t, "outlook != sunny", categorical.Condition(false))
}

func TestNodeString(t *testing.T) {
	tr := playTree()
	assert.Equal(t, "yes (confidence 0.80, samples 5)", tr.Root.Right.String())
	assert.Equal(t, "outlook = sunny? (gain 0.250, samples 19)", tr.Root.String())
}

func TestTreeString(t *testing.T) {
	s := playTree().String()
	assert.True(t, strings.HasPrefix(s, "[outlook = sunny? (gain 0.250, samples 19)]\n"))
	assert.Contains(t, s, "{ outlook = sunny }")
	assert.Contains(t, s, "{ outlook != sunny }")
	assert.Contains(t, s, "{ humidity <= 70 }")
	assert.Contains(t, s, "yes (confidence 1.00, samples 6)")
}

func TestEmptyTreeString(t *testing.T) {
	assert.Equal(t, "(empty tree)\n", (&Tree{}).String())
}
