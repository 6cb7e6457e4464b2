package problem

import (
	"github.com/san-kum/trajopt/internal/dynamics"
	"github.com/san-kum/trajopt/internal/transcribe"
)

// SparsityPattern enumerates the structural nonzeros of the point-mass
// Jacobian in canonical order: rows ascending, columns ascending within a
// row. The solver receives the same coordinates once at setup and the
// value vector in this order on every evaluation.
//
// Per dynamics row the nonzeros are the two stencil entries of the state's
// own block, the diagonal forcing couplings (speed and heading; the speed
// equation's own-speed coupling shares a cell with the stencil) and the
// final-time column.
func SparsityPattern(n int) (transcribe.Pattern, error) {
	l := transcribe.NewLayout(n)
	var rows, cols []int
	entry := func(r, c int) {
		rows = append(rows, r)
		cols = append(cols, c)
	}

	entry(l.RowObjective(), l.ColTf())

	for i := 0; i < n; i++ {
		row := l.RowDyn(dynamics.StateX, i)
		entry(row, l.ColX(i))
		entry(row, l.ColX(i+1))
		entry(row, l.ColV(i))
		entry(row, l.ColTheta(i))
		entry(row, l.ColTf())
	}
	for i := 0; i < n; i++ {
		row := l.RowDyn(dynamics.StateY, i)
		entry(row, l.ColY(i))
		entry(row, l.ColY(i+1))
		entry(row, l.ColV(i))
		entry(row, l.ColTheta(i))
		entry(row, l.ColTf())
	}
	for i := 0; i < n; i++ {
		row := l.RowDyn(dynamics.StateV, i)
		entry(row, l.ColV(i))
		entry(row, l.ColV(i+1))
		entry(row, l.ColTheta(i))
		entry(row, l.ColTf())
	}

	entry(l.RowStartX(), l.ColX(0))
	entry(l.RowStartY(), l.ColY(0))
	entry(l.RowStartV(), l.ColV(0))
	entry(l.RowEndX(), l.ColX(n))
	entry(l.RowEndY(), l.ColY(n))

	return transcribe.NewPattern(rows, cols)
}
