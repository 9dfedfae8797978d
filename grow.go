/*
Package xai grows binary decision trees from tabular datasets and
explains their classifications: for any input it reports not only
the predicted label and its confidence but the exact decision path
that produced it and the overall importance of every feature.
*/
package xai

import (
	"fmt"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
)

// Default hyperparameters applied by NewGrower and wherever a
// Grower field is left at its zero value.
const (
	DefaultMaxDepth      = 4
	DefaultMinSamples    = 5
	DefaultMinLeaf       = 1
	DefaultMinGain       = 0.01
	DefaultMaxThresholds = 20
)

// GrowError represents an error growing a tree from a dataset.
type GrowError string

func (ge GrowError) Error() string {
	return string(ge)
}

/*
ErrMissingTarget is the error returned when the dataset to grow
from does not define the target column.
*/
const ErrMissingTarget = GrowError("dataset does not define the target column")

/*
Grower grows decision trees. Target names the column the grown
tree predicts; the remaining fields tune the growing and default
to the package constants when left at zero:
  - MaxDepth bounds the number of decision levels.
  - MinSamples is the smallest record set worth splitting; nodes
    below it become leaves, and a whole dataset below it grows no
    tree at all.
  - MinLeaf is the smallest record count either side of a split
    may keep; the default only rules out empty sides.
  - MinGain is the information gain a split must exceed to be
    worth a decision node.
  - MaxThresholds caps the number of evenly spaced thresholds
    scanned over a numeric feature's range.
  - Excluded lists columns never considered for splitting, such
    as identifier columns.
*/
type Grower struct {
	Target        string
	MaxDepth      int
	MinSamples    int
	MinLeaf       int
	MinGain       float64
	MaxThresholds int
	Excluded      []string
}

/*
NewGrower takes the name of the target column and returns a
Grower for it with default hyperparameters.
*/
func NewGrower(target string) *Grower {
	return &Grower{
		Target:        target,
		MaxDepth:      DefaultMaxDepth,
		MinSamples:    DefaultMinSamples,
		MinLeaf:       DefaultMinLeaf,
		MinGain:       DefaultMinGain,
		MaxThresholds: DefaultMaxThresholds,
	}
}

/*
Grow takes a dataset and a target column name and grows a tree
predicting the target with default hyperparameters. It is
shorthand for NewGrower(target).Grow(ds).
*/
func Grow(ds *dataset.Dataset, target string) (*tree.Tree, error) {
	return NewGrower(target).Grow(ds)
}

/*
Grow grows a decision tree predicting the grower's target column
from the given dataset.

Growing is deterministic: candidate features are scanned in the
dataset's column order, numeric thresholds from low to high and
categories in first-seen order, and ties on information gain keep
the first candidate found, so the same dataset always grows the
same tree.

It returns an error wrapping ErrMissingTarget if the dataset does
not define the target column. A dataset with fewer records than
MinSamples cannot be modelled at all: Grow returns a nil tree and
a nil error, and callers must treat that as insufficient data
rather than a failure. The returned tree is immutable and safe
for concurrent prediction.
*/
func (g *Grower) Grow(ds *dataset.Dataset) (*tree.Tree, error) {
	gg := g.withDefaults()
	if ds == nil || !ds.HasColumn(gg.Target) {
		return nil, fmt.Errorf("growing tree: %w: %q", ErrMissingTarget, gg.Target)
	}
	if ds.Count() < gg.MinSamples {
		return nil, nil
	}
	root := gg.grow(ds.Records, gg.candidateColumns(ds), gg.MaxDepth)
	return tree.New(root, gg.Target), nil
}

func (g *Grower) grow(records []dataset.Record, candidates []candidateColumn, depth int) *tree.Node {
	labels, counts := dataset.ClassCounts(records, g.Target)
	if depth <= 0 || len(records) < g.MinSamples {
		return g.leafNode(records, labels, counts)
	}
	best := g.bestSplit(records, candidates)
	if best == nil || best.gain <= g.MinGain {
		return g.leafNode(records, labels, counts)
	}
	left, right := partitionRecords(records, best.split)
	if len(left) < g.MinLeaf || len(right) < g.MinLeaf {
		return g.leafNode(records, labels, counts)
	}
	return &tree.Node{
		Split:        best.split,
		Left:         g.grow(left, candidates, depth-1),
		Right:        g.grow(right, candidates, depth-1),
		Confidence:   best.gain,
		Samples:      len(records),
		Distribution: counts,
	}
}

/*
leafNode builds a leaf for a record set: the majority label wins,
with ties kept by the first label seen, and confidence is the
fraction of labelled records carrying it.
*/
func (g *Grower) leafNode(records []dataset.Record, labels []string, counts map[string]int) *tree.Node {
	var label string
	var majority, total int
	for _, l := range labels {
		c := counts[l]
		total += c
		if c > majority {
			majority = c
			label = l
		}
	}
	var confidence float64
	if total > 0 {
		confidence = float64(majority) / float64(total)
	}
	return &tree.Node{
		Label:        label,
		Confidence:   confidence,
		Samples:      len(records),
		Distribution: counts,
	}
}

/*
withDefaults returns a copy of the grower with every zero-valued
hyperparameter replaced by its package default.
*/
func (g *Grower) withDefaults() *Grower {
	gg := *g
	if gg.MaxDepth == 0 {
		gg.MaxDepth = DefaultMaxDepth
	}
	if gg.MinSamples == 0 {
		gg.MinSamples = DefaultMinSamples
	}
	if gg.MinLeaf == 0 {
		gg.MinLeaf = DefaultMinLeaf
	}
	if gg.MinGain == 0 {
		gg.MinGain = DefaultMinGain
	}
	if gg.MaxThresholds == 0 {
		gg.MaxThresholds = DefaultMaxThresholds
	}
	return &gg
}
