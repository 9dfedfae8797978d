package xai

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
	"golang.org/x/sync/errgroup"
)

/*
Evaluation is the result of scoring a tree against a labelled
dataset: how many records it was tried on, how many it labelled
correctly, how many it could not predict at all, and the fraction
of correct answers over the whole dataset.
*/
type Evaluation struct {
	Total    int
	Correct  int
	Failed   int
	Accuracy float64
}

/*
Evaluate scores a tree against a labelled dataset, predicting
every record and comparing the result with the record's value for
the tree's target column. Records the tree cannot predict, for
example because they do not define a feature some decision node
asks for, are counted as Failed rather than aborting the run.

Records are scored in parallel across the available CPUs; the
context can cancel the run early. An error is returned when the
tree is missing or the dataset does not define the tree's target
column.
*/
func Evaluate(ctx context.Context, t *tree.Tree, ds *dataset.Dataset) (*Evaluation, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("evaluating: %w", tree.ErrNoTree)
	}
	if ds == nil || !ds.HasColumn(t.Target) {
		return nil, fmt.Errorf("evaluating: %w: %q", ErrMissingTarget, t.Target)
	}
	records := ds.Records
	if len(records) == 0 {
		return &Evaluation{}, nil
	}
	workers := runtime.NumCPU()
	if workers > len(records) {
		workers = len(records)
	}
	chunk := (len(records) + workers - 1) / workers
	type counts struct {
		correct int
		failed  int
	}
	results := make([]counts, workers)
	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		if start >= len(records) {
			break
		}
		end := start + chunk
		if end > len(records) {
			end = len(records)
		}
		g.Go(func() error {
			for _, r := range records[start:end] {
				if err := gCtx.Err(); err != nil {
					return err
				}
				p, err := t.Predict(r)
				if err != nil {
					var te tree.TraversalError
					if !errors.As(err, &te) {
						return err
					}
					results[w].failed++
					continue
				}
				if v, ok := r[t.Target]; ok && v != nil && stringValue(v) == p.Label {
					results[w].correct++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ev := &Evaluation{Total: len(records)}
	for _, c := range results {
		ev.Correct += c.correct
		ev.Failed += c.failed
	}
	ev.Accuracy = float64(ev.Correct) / float64(ev.Total)
	return ev, nil
}
