package transcribe

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/trajopt/internal/dynamics"
)

// ErrDegenerateStep reports a trial point whose final time does not exceed
// the initial time. The solver's line search may probe such points; they
// must surface as an explicit failure, never as NaN residuals.
var ErrDegenerateStep = errors.New("transcribe: non-positive step size (tf <= t0)")

// Params is the read-only discretization configuration shared by every
// evaluation of one optimization run.
type Params struct {
	T0 float64 // initial time
	N  int     // number of discretization intervals
}

// Evaluation is the output of one trial-point evaluation: the residuals in
// their fixed order and the Jacobian nonzeros in pattern order.
type Evaluation struct {
	F []float64
	G []float64
}

// Transcriber evaluates residuals and Jacobians for trial points of the
// transcribed problem. It holds no mutable state after construction.
type Transcriber struct {
	model   dynamics.Model
	params  Params
	d       *mat.Dense
	layout  Layout
	pattern Pattern
}

// New validates the configuration and builds a Transcriber. The difference
// operator d must be n×(n+1) and, like the pattern, is borrowed for the
// lifetime of the solve and must not be mutated.
func New(model dynamics.Model, params Params, d *mat.Dense, pattern Pattern) (*Transcriber, error) {
	if model == nil {
		return nil, errors.New("transcribe: model is required")
	}
	if params.N <= 0 {
		return nil, fmt.Errorf("transcribe: intervals must be positive, got %d", params.N)
	}
	r, c := d.Dims()
	if r != params.N || c != params.N+1 {
		return nil, fmt.Errorf("transcribe: difference operator is %dx%d, want %dx%d", r, c, params.N, params.N+1)
	}
	layout := NewLayout(params.N)
	if err := pattern.check(layout.Residual(), layout.Decision()); err != nil {
		return nil, err
	}
	return &Transcriber{
		model:   model,
		params:  params,
		d:       d,
		layout:  layout,
		pattern: pattern,
	}, nil
}

func (tr *Transcriber) Params() Params        { return tr.params }
func (tr *Transcriber) Layout() Layout        { return tr.layout }
func (tr *Transcriber) Pattern() Pattern      { return tr.pattern }
func (tr *Transcriber) Model() dynamics.Model { return tr.model }
func (tr *Transcriber) Operator() mat.Matrix  { return tr.d }

// Evaluate computes the residual vector and the ordered Jacobian values for
// one trial point. Identical inputs produce bit-identical outputs.
func (tr *Transcriber) Evaluate(z []float64) (*Evaluation, error) {
	f, err := tr.Residuals(z)
	if err != nil {
		return nil, err
	}
	g, err := tr.DenseJacobian(z)
	if err != nil {
		return nil, err
	}
	return &Evaluation{F: f, G: tr.pattern.Extract(g, nil)}, nil
}

// CheckPattern verifies that every analytic nonzero at z falls inside the
// declared sparsity pattern. Meant for a validation pass when wiring a new
// problem or pattern.
func (tr *Transcriber) CheckPattern(z []float64) error {
	g, err := tr.DenseJacobian(z)
	if err != nil {
		return err
	}
	return tr.pattern.Covers(g)
}

// step derives dt from the trial final time. A non-positive or non-finite
// step is a numerical degeneracy, reported rather than propagated as NaN.
func (tr *Transcriber) step(tf float64) (float64, error) {
	dt := (tf - tr.params.T0) / float64(tr.params.N)
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0, fmt.Errorf("%w: tf=%g, t0=%g", ErrDegenerateStep, tf, tr.params.T0)
	}
	return dt, nil
}
