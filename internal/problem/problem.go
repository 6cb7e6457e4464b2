// Package problem wires a named trajectory problem into everything the
// solver and the evaluation core consume: the transcriber itself plus the
// bounds, initial guess and sparsity pattern that frame one solve.
package problem

import (
	"fmt"
	"math"

	"github.com/san-kum/trajopt/internal/dynamics"
	"github.com/san-kum/trajopt/internal/transcribe"
)

// Start is the prescribed state at t0.
type Start struct {
	X, Y, V float64
}

// Finish is the prescribed position at the free final time.
type Finish struct {
	X, Y float64
}

// Definition specifies one brachistochrone-with-friction instance.
type Definition struct {
	N        int     // discretization intervals
	T0       float64 // initial time
	Friction float64 // linear drag coefficient, 0 for frictionless
	Start    Start
	Finish   Finish
	TfGuess  float64 // starting final time; 0 picks one from the chord
}

// Setup is what the external solver consumes besides the evaluation
// callback. FLow/FUpp frame the residual vector element for element in its
// fixed order; equalities are encoded as equal bounds.
type Setup struct {
	Guess      []float64
	FLow, FUpp []float64
	ZLow, ZUpp []float64
}

func (d Definition) validate() error {
	if d.N <= 0 {
		return fmt.Errorf("problem: intervals must be positive, got %d", d.N)
	}
	if d.Friction < 0 {
		return fmt.Errorf("problem: friction must be non-negative, got %g", d.Friction)
	}
	if d.TfGuess != 0 && d.TfGuess <= d.T0 {
		return fmt.Errorf("problem: tf guess %g must exceed t0 %g", d.TfGuess, d.T0)
	}
	return nil
}

// Build constructs the immutable transcriber for this definition together
// with the solver-facing setup.
func (d Definition) Build() (*transcribe.Transcriber, *Setup, error) {
	if err := d.validate(); err != nil {
		return nil, nil, err
	}

	diff, err := transcribe.FirstDifference(d.N)
	if err != nil {
		return nil, nil, err
	}
	pattern, err := SparsityPattern(d.N)
	if err != nil {
		return nil, nil, err
	}

	tr, err := transcribe.New(
		dynamics.NewPointMass(d.Friction),
		transcribe.Params{T0: d.T0, N: d.N},
		diff, pattern,
	)
	if err != nil {
		return nil, nil, err
	}

	setup := &Setup{Guess: d.guess()}
	d.bounds(setup)
	return tr, setup, nil
}

// guess seeds the solver with a chord trajectory: linear positions, speed
// from energy conservation along the descent, constant chord heading.
func (d Definition) guess() []float64 {
	l := transcribe.NewLayout(d.N)
	z := make([]float64, l.Decision())

	dx := d.Finish.X - d.Start.X
	dy := d.Finish.Y - d.Start.Y
	theta := math.Atan2(dx, dy) // heading from the vertical

	for i := 0; i <= d.N; i++ {
		frac := float64(i) / float64(d.N)
		z[l.ColX(i)] = d.Start.X + frac*dx
		z[l.ColY(i)] = d.Start.Y + frac*dy
		// v^2 = v0^2 + 2*g*drop in normalized units; keep a small floor so
		// a flat start does not pin the guess at zero speed.
		drop := frac * dy
		v2 := d.Start.V*d.Start.V + 2*drop
		z[l.ColV(i)] = math.Sqrt(math.Max(v2, 0.01))
	}
	// Boundary samples must hit the prescribed values exactly, not through
	// interpolation arithmetic.
	z[l.ColX(0)], z[l.ColY(0)], z[l.ColV(0)] = d.Start.X, d.Start.Y, d.Start.V
	z[l.ColX(d.N)], z[l.ColY(d.N)] = d.Finish.X, d.Finish.Y
	for i := 0; i < d.N; i++ {
		z[l.ColTheta(i)] = theta
	}

	tf := d.TfGuess
	if tf == 0 {
		chord := math.Hypot(dx, dy)
		vMean := 0.5 * (z[l.ColV(0)] + z[l.ColV(d.N)])
		tf = d.T0 + chord/math.Max(vMean, 0.1)
	}
	z[l.ColTf()] = tf
	return z
}

func (d Definition) bounds(s *Setup) {
	l := transcribe.NewLayout(d.N)
	inf := math.Inf(1)

	s.FLow = make([]float64, l.Residual())
	s.FUpp = make([]float64, l.Residual())
	s.FLow[l.RowObjective()] = -inf
	s.FUpp[l.RowObjective()] = inf
	// Dynamics rows are equalities at zero; the make() zeros already encode
	// that, so only the boundary rows need pinning.
	for row, val := range map[int]float64{
		l.RowStartX(): d.Start.X,
		l.RowStartY(): d.Start.Y,
		l.RowStartV(): d.Start.V,
		l.RowEndX():   d.Finish.X,
		l.RowEndY():   d.Finish.Y,
	} {
		s.FLow[row] = val
		s.FUpp[row] = val
	}

	s.ZLow = make([]float64, l.Decision())
	s.ZUpp = make([]float64, l.Decision())
	for i := 0; i <= d.N; i++ {
		s.ZLow[l.ColX(i)], s.ZUpp[l.ColX(i)] = -inf, inf
		s.ZLow[l.ColY(i)], s.ZUpp[l.ColY(i)] = -inf, inf
		s.ZLow[l.ColV(i)], s.ZUpp[l.ColV(i)] = 0, inf
	}
	for i := 0; i < d.N; i++ {
		s.ZLow[l.ColTheta(i)], s.ZUpp[l.ColTheta(i)] = -math.Pi, math.Pi
	}
	// Keep tf strictly past t0 so the step size stays positive through the
	// line search.
	s.ZLow[l.ColTf()], s.ZUpp[l.ColTf()] = d.T0+1e-4, inf
}
