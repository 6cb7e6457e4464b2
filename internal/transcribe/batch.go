package transcribe

import (
	"context"
	"sync"
)

// Batch evaluates many trial points against one shared Transcriber, e.g.
// for a multi-start wrapper probing several guesses at once. Safe because
// the Transcriber is immutable.
type Batch struct {
	tr *Transcriber
}

func NewBatch(tr *Transcriber) *Batch {
	return &Batch{tr: tr}
}

// Evaluate runs one evaluation per point concurrently. The first error
// encountered is returned; results are in point order.
func (b *Batch) Evaluate(ctx context.Context, points [][]float64) ([]*Evaluation, error) {
	evals := make([]*Evaluation, len(points))
	errs := make([]error, len(points))

	var wg sync.WaitGroup
	for i := range points {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			default:
			}
			evals[idx], errs[idx] = b.tr.Evaluate(points[idx])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return evals, nil
}
