package transcribe

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/trajopt/internal/dynamics"
)

// Residuals evaluates the constraint vector F at z, in the fixed order
// [tf; dyn_x; dyn_y; dyn_v; x0; y0; v0; xN; yN]. This order is a contract
// with the bounds the solver was configured with.
func (tr *Transcriber) Residuals(z []float64) ([]float64, error) {
	vars, err := SplitVars(z, tr.params.N)
	if err != nil {
		return nil, err
	}
	dt, err := tr.step(vars.Tf)
	if err != nil {
		return nil, err
	}

	n, l := tr.params.N, tr.layout
	states := [dynamics.NumStates][]float64{vars.X, vars.Y, vars.V}

	f := make([]float64, l.Residual())
	f[l.RowObjective()] = vars.Tf

	for i := 0; i < n; i++ {
		force := tr.model.Forcing(dynamics.Sample{
			X: vars.X[i], Y: vars.Y[i], V: vars.V[i], Theta: vars.Theta[i],
		})
		row := tr.d.RawRowView(i)
		for k := 0; k < dynamics.NumStates; k++ {
			f[l.RowDyn(k, i)] = floats.Dot(row, states[k]) - dt*force[k]
		}
	}

	// Boundary conditions are the raw samples; the solver pins them via
	// equal lower and upper bounds.
	f[l.RowStartX()] = vars.X[0]
	f[l.RowStartY()] = vars.Y[0]
	f[l.RowStartV()] = vars.V[0]
	f[l.RowEndX()] = vars.X[n]
	f[l.RowEndY()] = vars.Y[n]

	return f, nil
}
