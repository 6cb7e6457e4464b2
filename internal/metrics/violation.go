package metrics

import (
	"math"

	"github.com/san-kum/trajopt/internal/transcribe"
)

// Violation tracks the worst residual-bound violation seen across
// observations. Equality rows violate by their distance from the pinned
// value; the unbounded objective row never contributes.
type Violation struct {
	name       string
	flow, fupp []float64
	worst      float64
	samples    int
}

func NewViolation(flow, fupp []float64) *Violation {
	return &Violation{
		name: "violation",
		flow: flow,
		fupp: fupp,
	}
}

func (v *Violation) Name() string { return v.name }

func (v *Violation) Observe(e *transcribe.Evaluation) {
	v.samples++
	for i, f := range e.F {
		if i >= len(v.flow) {
			break
		}
		if d := v.flow[i] - f; d > v.worst {
			v.worst = d
		}
		if d := f - v.fupp[i]; d > v.worst {
			v.worst = d
		}
	}
}

func (v *Violation) Value() float64 {
	if v.samples == 0 {
		return math.NaN()
	}
	return v.worst
}

func (v *Violation) Reset() {
	v.worst = 0
	v.samples = 0
}
