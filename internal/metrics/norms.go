package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/trajopt/internal/transcribe"
)

// DynamicsNorm tracks the largest 2-norm of the dynamics residual rows,
// i.e. how far observed trial points sit from the discretized dynamics.
type DynamicsNorm struct {
	name    string
	layout  transcribe.Layout
	worst   float64
	samples int
}

func NewDynamicsNorm(layout transcribe.Layout) *DynamicsNorm {
	return &DynamicsNorm{
		name:   "dynamics_norm",
		layout: layout,
	}
}

func (d *DynamicsNorm) Name() string { return d.name }

func (d *DynamicsNorm) Observe(e *transcribe.Evaluation) {
	d.samples++
	lo := d.layout.RowDyn(0, 0)
	hi := d.layout.RowStartX()
	if hi > len(e.F) {
		return
	}
	if n := floats.Norm(e.F[lo:hi], 2); n > d.worst {
		d.worst = n
	}
}

func (d *DynamicsNorm) Value() float64 {
	if d.samples == 0 {
		return math.NaN()
	}
	return d.worst
}

func (d *DynamicsNorm) Reset() {
	d.worst = 0
	d.samples = 0
}

// JacobianNorm tracks the largest absolute Jacobian value seen, a cheap
// scale indicator for the solver's conditioning.
type JacobianNorm struct {
	name    string
	worst   float64
	samples int
}

func NewJacobianNorm() *JacobianNorm {
	return &JacobianNorm{name: "jacobian_norm"}
}

func (j *JacobianNorm) Name() string { return j.name }

func (j *JacobianNorm) Observe(e *transcribe.Evaluation) {
	j.samples++
	for _, g := range e.G {
		if a := math.Abs(g); a > j.worst {
			j.worst = a
		}
	}
}

func (j *JacobianNorm) Value() float64 {
	if j.samples == 0 {
		return math.NaN()
	}
	return j.worst
}

func (j *JacobianNorm) Reset() {
	j.worst = 0
	j.samples = 0
}
