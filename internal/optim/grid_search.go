// Package optim provides coarse parameter searches over transcribed
// problems. It is not the NLP solver; it ranks whole problem setups by an
// evaluation metric, e.g. to pick a starting guess for one.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/trajopt/internal/metrics"
	"github.com/san-kum/trajopt/internal/problem"
	"github.com/san-kum/trajopt/internal/transcribe"
)

// Builder derives a problem definition from one grid point.
type Builder func(params map[string]float64) problem.Definition

// MetricBuilder constructs the ranking metric for one built setup, so
// bounds-dependent metrics work.
type MetricBuilder func(tr *transcribe.Transcriber, s *problem.Setup) metrics.Metric

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every grid point's guess and returns the parameters
// with the smallest metric value. Grid points that fail to build or
// evaluate are skipped rather than aborting the search.
func (g *GridSearch) Search(ctx context.Context, build Builder, metric MetricBuilder) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, metric, &best, &bestParams)
	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Builder,
	metric MetricBuilder,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		tr, setup, err := build(current).Build()
		if err != nil {
			return nil
		}
		eval, err := tr.Evaluate(setup.Guess)
		if err != nil {
			return nil
		}

		m := metric(tr, setup)
		m.Observe(eval)
		if val := m.Value(); val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, current, build, metric, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, paramName)
	return nil
}
