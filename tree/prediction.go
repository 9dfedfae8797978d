package tree

import (
	"fmt"
	"sort"
	"strings"
)

/*
Prediction is the outcome of walking a record down to a leaf:
the leaf's label, the fraction of the leaf's training samples
that carried it, how many samples the leaf was grown from, and
the full label distribution observed there.
*/
type Prediction struct {
	Label        string
	Confidence   float64
	Samples      int
	Distribution map[string]int
}

// TraversalError represents an error walking a tree with a record.
type TraversalError string

func (te TraversalError) Error() string {
	return string(te)
}

/*
ErrIncompleteFeatures is the error returned when a traversal
reaches a decision node whose split feature the record does not
define. Callers must supply a value for every feature the tree
can query, or pre-validate the record against the tree's schema.
*/
const ErrIncompleteFeatures = TraversalError("record does not define a feature required by the tree")

/*
ErrMalformedTree is the error returned when a traversal selects a
branch whose child node is missing. A grown tree never produces
this; it guards trees assembled or decoded by hand.
*/
const ErrMalformedTree = TraversalError("decision node is missing a child")

/*
ErrNoTree is the error returned when asking a nil tree or a tree
without a root for a prediction.
*/
const ErrNoTree = TraversalError("no tree to predict with")

func newPrediction(leaf *Node) *Prediction {
	return &Prediction{
		Label:        leaf.Label,
		Confidence:   leaf.Confidence,
		Samples:      leaf.Samples,
		Distribution: leaf.Distribution,
	}
}

func (p *Prediction) String() string {
	labels := make([]string, 0, len(p.Distribution))
	for l := range p.Distribution {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s:%d", l, p.Distribution[l]))
	}
	return fmt.Sprintf("%s (%.2f) [%s]", p.Label, p.Confidence, strings.Join(parts, " "))
}
