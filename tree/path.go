package tree

import (
	"fmt"
	"strconv"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
)

/*
Predict takes a record and walks it from the root to a leaf,
returning the leaf's prediction. It returns an error wrapping
ErrIncompleteFeatures if the record does not define a feature
some decision node on the way asks for, and an error wrapping
ErrMalformedTree if a selected child is missing.
*/
func (t *Tree) Predict(r dataset.Record) (*Prediction, error) {
	path, err := t.Path(r)
	if err != nil {
		return nil, err
	}
	return newPrediction(path[len(path)-1]), nil
}

/*
Path takes a record and returns the ordered sequence of nodes a
prediction for it visits, root first, leaf last. Prediction and
path can never disagree: Predict reads its answer from the last
node of this very sequence.

On a traversal failure the nodes walked so far are returned
together with the error, so callers can still show where the
walk stopped.
*/
func (t *Tree) Path(r dataset.Record) ([]*Node, error) {
	if t == nil || t.Root == nil {
		return nil, ErrNoTree
	}
	return PathFrom(t.Root, r)
}

/*
PathFrom starts the traversal at an arbitrary node instead of the
root and returns the visited nodes down to a leaf, the given node
first. It applies exactly the same branching rule as Path, so a
path resumed from an internal node always agrees with the suffix
of a full root-to-leaf path through that node.
*/
func PathFrom(n *Node, r dataset.Record) ([]*Node, error) {
	if n == nil {
		return nil, ErrNoTree
	}
	path := []*Node{n}
	for !n.IsLeaf() {
		v, ok := r[n.Split.Feature]
		if !ok || v == nil {
			return path, fmt.Errorf("%w: %s", ErrIncompleteFeatures, n.Split.Feature)
		}
		left, err := n.Split.routesLeft(v)
		if err != nil {
			return path, err
		}
		var next *Node
		if left {
			next = n.Left
		} else {
			next = n.Right
		}
		if next == nil {
			return path, fmt.Errorf("%w: after %s", ErrMalformedTree, n.Split.Condition(left))
		}
		n = next
		path = append(path, n)
	}
	return path, nil
}

// routesLeft applies the split to a single value.
func (s *Split) routesLeft(v interface{}) (bool, error) {
	switch s.Kind {
	case Numeric:
		f, ok := numericValue(v)
		if !ok {
			return false, fmt.Errorf("%w: %s needs a numeric value, got %T", ErrIncompleteFeatures, s.Feature, v)
		}
		return f <= s.Threshold, nil
	case Categorical:
		return labelValue(v) == s.Category, nil
	}
	return false, fmt.Errorf("unknown split kind %d on feature %s", s.Kind, s.Feature)
}

// numericValue coerces the values records and probe inputs may
// carry for a numeric feature.
func numericValue(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func labelValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
