package xai

import (
	"fmt"
	"math"
	"strconv"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
)

type columnKind int

const (
	numericColumn columnKind = iota
	categoricalColumn
)

type candidateColumn struct {
	name string
	kind columnKind
}

type scoredSplit struct {
	split *tree.Split
	gain  float64
}

/*
candidateColumns lists the columns a split may be searched over,
in the dataset's column order, skipping the target and any
excluded columns. A column is numeric when every defined value in
the dataset is a typed number, categorical otherwise.
*/
func (g *Grower) candidateColumns(ds *dataset.Dataset) []candidateColumn {
	skip := map[string]bool{g.Target: true}
	for _, c := range g.Excluded {
		skip[c] = true
	}
	var candidates []candidateColumn
	for _, c := range ds.Columns {
		if skip[c] {
			continue
		}
		kind := categoricalColumn
		if columnIsNumeric(ds.Records, c) {
			kind = numericColumn
		}
		candidates = append(candidates, candidateColumn{name: c, kind: kind})
	}
	return candidates
}

/*
bestSplit searches all candidate columns for the split with the
strictly greatest information gain over the given records, or nil
when no candidate produces a split with both sides above the
MinLeaf floor. Gain ties keep the first candidate found.
*/
func (g *Grower) bestSplit(records []dataset.Record, candidates []candidateColumn) *scoredSplit {
	_, counts := dataset.ClassCounts(records, g.Target)
	parentEntropy := entropy(counts)
	var best *scoredSplit
	for _, c := range candidates {
		switch c.kind {
		case numericColumn:
			best = g.scanNumeric(records, c.name, parentEntropy, best)
		case categoricalColumn:
			best = g.scanCategorical(records, c.name, parentEntropy, best)
		}
	}
	return best
}

/*
scanNumeric scans up to MaxThresholds evenly spaced thresholds
over the open interval between the column's minimum and maximum,
low to high. The step is (max-min)/min(MaxThresholds, max-min),
so a range smaller than the threshold cap is scanned at unit
resolution and a range of 1 or less yields no candidates at all.
*/
func (g *Grower) scanNumeric(records []dataset.Record, column string, parentEntropy float64, best *scoredSplit) *scoredSplit {
	mn, mx, ok := numericRange(records, column)
	if !ok || mx <= mn {
		return best
	}
	span := mx - mn
	divisions := span
	if divisions > float64(g.MaxThresholds) {
		divisions = float64(g.MaxThresholds)
	}
	step := span / divisions
	for i := 1; ; i++ {
		threshold := mn + float64(i)*step
		if threshold >= mx {
			break
		}
		best = g.consider(records, &tree.Split{
			Feature:   column,
			Kind:      tree.Numeric,
			Threshold: threshold,
		}, parentEntropy, best)
	}
	return best
}

/*
scanCategorical tries every distinct value of the column as the
single left-side category, in the order the values are first seen
over the records.
*/
func (g *Grower) scanCategorical(records []dataset.Record, column string, parentEntropy float64, best *scoredSplit) *scoredSplit {
	seen := map[string]bool{}
	var categories []string
	for _, r := range records {
		v, ok := r[column]
		if !ok || v == nil {
			continue
		}
		c := stringValue(v)
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	if len(categories) < 2 {
		return best
	}
	for _, c := range categories {
		best = g.consider(records, &tree.Split{
			Feature:  column,
			Kind:     tree.Categorical,
			Category: c,
		}, parentEntropy, best)
	}
	return best
}

/*
consider scores one concrete split candidate against the current
best and returns whichever wins. Candidates leaving either side
below the MinLeaf floor are skipped; a candidate replaces the
best only with strictly greater gain.
*/
func (g *Grower) consider(records []dataset.Record, split *tree.Split, parentEntropy float64, best *scoredSplit) *scoredSplit {
	leftCounts := map[string]int{}
	rightCounts := map[string]int{}
	var leftN, rightN int
	for _, r := range records {
		if goesLeft(r, split) {
			leftN++
			countLabel(leftCounts, r, g.Target)
		} else {
			rightN++
			countLabel(rightCounts, r, g.Target)
		}
	}
	if leftN < g.MinLeaf || rightN < g.MinLeaf {
		return best
	}
	total := float64(leftN + rightN)
	gain := parentEntropy -
		float64(leftN)/total*entropy(leftCounts) -
		float64(rightN)/total*entropy(rightCounts)
	if best == nil || gain > best.gain {
		return &scoredSplit{split: split, gain: gain}
	}
	return best
}

/*
partitionRecords splits records into the left and right sides of
a split. Routing is total: a record with a missing or uncoercible
value for the split feature falls right, so the two sides always
add up to the input.
*/
func partitionRecords(records []dataset.Record, s *tree.Split) ([]dataset.Record, []dataset.Record) {
	var left, right []dataset.Record
	for _, r := range records {
		if goesLeft(r, s) {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}

func goesLeft(r dataset.Record, s *tree.Split) bool {
	v, ok := r[s.Feature]
	if !ok || v == nil {
		return false
	}
	if s.Kind == tree.Numeric {
		f, ok := numericValue(v)
		return ok && f <= s.Threshold
	}
	return stringValue(v) == s.Category
}

func countLabel(counts map[string]int, r dataset.Record, target string) {
	v, ok := r[target]
	if !ok || v == nil {
		return
	}
	counts[stringValue(v)]++
}

/*
entropy computes the base-2 Shannon entropy of a label
distribution. Classes with a zero count contribute zero.
*/
func entropy(counts map[string]int) float64 {
	var total int
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	var e float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		e -= p * math.Log2(p)
	}
	return e
}

func numericRange(records []dataset.Record, column string) (float64, float64, bool) {
	var mn, mx float64
	var found bool
	for _, r := range records {
		v, ok := r[column]
		if !ok || v == nil {
			continue
		}
		f, ok := numericValue(v)
		if !ok {
			continue
		}
		if !found {
			mn, mx = f, f
			found = true
			continue
		}
		if f < mn {
			mn = f
		}
		if f > mx {
			mx = f
		}
	}
	return mn, mx, found
}

func columnIsNumeric(records []dataset.Record, column string) bool {
	var defined bool
	for _, r := range records {
		v, ok := r[column]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case float64, float32, int, int64:
			defined = true
		default:
			return false
		}
	}
	return defined
}

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

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
