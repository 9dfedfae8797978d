/*
Package tree defines the binary decision tree produced by growing:
an owned recursive structure of decision and leaf nodes, the
traversal used for prediction and explanation, the feature
importance computation, and a registry for storing grown models.
*/
package tree

import (
	"fmt"
	"strings"
)

// SplitKind distinguishes the two ways a decision node
// routes records.
type SplitKind int

const (
	// Numeric splits route a record left when its value for
	// the split feature is less than or equal to the threshold.
	Numeric SplitKind = iota
	// Categorical splits route a record left when its value for
	// the split feature equals the category, compared as strings.
	Categorical
)

/*
Split is the routing rule owned by a decision node: a feature
name together with a numeric threshold or a category label.
Splits are computed once during growing and never change.
*/
type Split struct {
	Feature   string
	Kind      SplitKind
	Threshold float64
	Category  string
}

/*
Node is a node of a decision tree. Decision nodes own a Split and
exactly two children; leaves own a predicted Label instead. Every
node carries the number of samples it was grown from and their
label distribution. Confidence holds the majority-class fraction
on leaves and the information gain of the split on decision nodes.

Children are exclusively owned: the tree is a recursive value with
no parent or back references.
*/
type Node struct {
	Split        *Split
	Left         *Node
	Right        *Node
	Label        string
	Confidence   float64
	Samples      int
	Distribution map[string]int
}

/*
Tree is a grown decision tree: the root node and the name of the
target column its leaves predict. Trees are immutable once grown,
so any number of goroutines may predict from the same tree
concurrently.
*/
type Tree struct {
	Root   *Node
	Target string
}

/*
New takes a root node and a target column name and returns a tree
composed of them.
*/
func New(root *Node, target string) *Tree {
	return &Tree{Root: root, Target: target}
}

/*
IsLeaf returns whether the node is a leaf.
*/
func (n *Node) IsLeaf() bool {
	return n.Split == nil
}

/*
Condition returns a string describing the branch of the split the
given side selects: the split's own rule for the left branch and
its negation for the right one.
*/
func (s *Split) Condition(left bool) string {
	switch s.Kind {
	case Numeric:
		if left {
			return fmt.Sprintf("%s <= %g", s.Feature, s.Threshold)
		}
		return fmt.Sprintf("%s > %g", s.Feature, s.Threshold)
	case Categorical:
		if left {
			return fmt.Sprintf("%s = %s", s.Feature, s.Category)
		}
		return fmt.Sprintf("%s != %s", s.Feature, s.Category)
	}
	return fmt.Sprintf("unknown split kind %d", s.Kind)
}

func (s *Split) String() string {
	return s.Condition(true)
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("%s (confidence %.2f, samples %d)", n.Label, n.Confidence, n.Samples)
	}
	return fmt.Sprintf("%s? (gain %.3f, samples %d)", n.Split, n.Confidence, n.Samples)
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return "(empty tree)\n"
	}
	return subtreeString(t.Root, "")
}

func subtreeString(n *Node, condition string) string {
	result := fmt.Sprintf("[%s]\n", n)
	if condition != "" {
		result = fmt.Sprintf("%s{ %s }\n", result, condition)
	}
	if n.IsLeaf() {
		return result
	}
	result = fmt.Sprintf("%s|\n", result)
	children := []*Node{n.Left, n.Right}
	for i, child := range children {
		if child == nil {
			continue
		}
		for j, line := range strings.Split(subtreeString(child, n.Split.Condition(i == 0)), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(children)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
