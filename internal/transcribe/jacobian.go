package transcribe

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/trajopt/internal/dynamics"
)

// DenseJacobian assembles the full matrix of partials dF/dz at z from the
// model's closed-form derivatives. Structurally zero blocks are never
// written, so they are exact zeros, not rounding residue.
//
// Per dynamics row of state k and interval i the contributions are:
//
//	d/d(state k samples): row i of the difference operator
//	d/d(block b, sample i): -dt * df_k/db, diagonal in the sample index
//	d/d(tf): -(1/n) * f_k[i], the chain rule through dt = (tf-t0)/n
//
// The friction-shifted operator E of the speed equation is not stored
// anywhere; it emerges from the first two lines when b is the speed block
// itself. With zero friction that shift vanishes and the block reduces to
// the plain difference operator.
func (tr *Transcriber) DenseJacobian(z []float64) (*mat.Dense, error) {
	vars, err := SplitVars(z, tr.params.N)
	if err != nil {
		return nil, err
	}
	dt, err := tr.step(vars.Tf)
	if err != nil {
		return nil, err
	}

	n, l := tr.params.N, tr.layout
	g := mat.NewDense(l.Residual(), l.Decision(), nil)
	add := func(r, c int, v float64) { g.Set(r, c, g.At(r, c)+v) }

	g.Set(l.RowObjective(), l.ColTf(), 1)

	invN := 1 / float64(n)
	for i := 0; i < n; i++ {
		sample := dynamics.Sample{
			X: vars.X[i], Y: vars.Y[i], V: vars.V[i], Theta: vars.Theta[i],
		}
		force := tr.model.Forcing(sample)
		part := tr.model.Partials(sample)
		drow := tr.d.RawRowView(i)

		for k := 0; k < dynamics.NumStates; k++ {
			row := l.RowDyn(k, i)
			for j, dv := range drow {
				if dv != 0 {
					add(row, l.ColState(k, j), dv)
				}
			}
			cols := [dynamics.NumBlocks]int{l.ColX(i), l.ColY(i), l.ColV(i), l.ColTheta(i)}
			for b, p := range part[k] {
				if p != 0 {
					add(row, cols[b], -dt*p)
				}
			}
			g.Set(row, l.ColTf(), -invN*force[k])
		}
	}

	g.Set(l.RowStartX(), l.ColX(0), 1)
	g.Set(l.RowStartY(), l.ColY(0), 1)
	g.Set(l.RowStartV(), l.ColV(0), 1)
	g.Set(l.RowEndX(), l.ColX(n), 1)
	g.Set(l.RowEndY(), l.ColY(n), 1)

	return g, nil
}
