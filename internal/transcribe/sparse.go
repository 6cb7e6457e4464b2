package transcribe

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Pattern is the solver-mandated ordering of the Jacobian entries declared
// structurally nonzero. It is fixed for a whole optimization run.
type Pattern struct {
	rows, cols []int
}

// NewPattern builds a pattern from parallel row and column index slices in
// the order the solver wants the values.
func NewPattern(rows, cols []int) (Pattern, error) {
	if len(rows) != len(cols) {
		return Pattern{}, fmt.Errorf("transcribe: pattern has %d rows but %d cols", len(rows), len(cols))
	}
	return Pattern{rows: rows, cols: cols}, nil
}

// Len returns the number of declared nonzeros.
func (p Pattern) Len() int { return len(p.rows) }

// At returns the dense coordinates of the k-th declared nonzero.
func (p Pattern) At(k int) (row, col int) { return p.rows[k], p.cols[k] }

// Extract reads g at every pattern position, in pattern order. If dst is
// nil a new slice is allocated; otherwise it must have length Len.
func (p Pattern) Extract(g mat.Matrix, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, p.Len())
	}
	for k := range p.rows {
		dst[k] = g.At(p.rows[k], p.cols[k])
	}
	return dst
}

// Covers reports whether every nonzero of g lies inside the pattern. A
// nonzero outside the pattern would be silently dropped by Extract and
// corrupt the Jacobian the solver converges on, so wiring a new problem
// should run this once in a validation pass.
func (p Pattern) Covers(g mat.Matrix) error {
	r, c := g.Dims()
	declared := make(map[int]struct{}, p.Len())
	for k := range p.rows {
		declared[p.rows[k]*c+p.cols[k]] = struct{}{}
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if g.At(i, j) == 0 {
				continue
			}
			if _, ok := declared[i*c+j]; !ok {
				return fmt.Errorf("transcribe: nonzero at (%d,%d) outside sparsity pattern", i, j)
			}
		}
	}
	return nil
}

// check validates the pattern against the dense Jacobian shape.
func (p Pattern) check(rows, cols int) error {
	for k := range p.rows {
		if p.rows[k] < 0 || p.rows[k] >= rows || p.cols[k] < 0 || p.cols[k] >= cols {
			return fmt.Errorf("transcribe: pattern entry %d references (%d,%d), outside %dx%d Jacobian", k, p.rows[k], p.cols[k], rows, cols)
		}
	}
	return nil
}
