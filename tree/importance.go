package tree

import (
	"math"
	"sort"
)

/*
FeatureWeight is the share of a tree's total split quality
attributed to one feature, as reported by Importance.
*/
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

/*
Importance walks the tree and scores every feature that appears
in a decision node. Each node contributes the information gain of
its split, scaled by the fraction of training samples that
reached the node and discounted by 0.9 per level of depth, so
splits near the root weigh more than equally good splits deep in
the tree. The scores are normalized to sum to 1 and returned in
descending order of weight; features scoring the same keep the
order in which the walk first met them.

A tree that is a single leaf has no splits and yields an empty
slice.
*/
func (t *Tree) Importance() []FeatureWeight {
	if t == nil || t.Root == nil {
		return nil
	}
	scores := map[string]float64{}
	var order []string
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil || n.IsLeaf() {
			return
		}
		if _, ok := scores[n.Split.Feature]; !ok {
			order = append(order, n.Split.Feature)
		}
		reach := float64(n.Samples) / 100.0
		scores[n.Split.Feature] += reach * math.Pow(0.9, float64(depth)) * n.Confidence
		walk(n.Left, depth+1)
		walk(n.Right, depth+1)
	}
	walk(t.Root, 0)
	if len(order) == 0 {
		return []FeatureWeight{}
	}
	var total float64
	for _, s := range scores {
		total += s
	}
	weights := make([]FeatureWeight, 0, len(order))
	for _, f := range order {
		w := scores[f]
		if total > 0 {
			w /= total
		}
		weights = append(weights, FeatureWeight{Feature: f, Weight: w})
	}
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Weight > weights[j].Weight
	})
	return weights
}
