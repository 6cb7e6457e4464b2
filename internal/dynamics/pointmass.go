package dynamics

import (
	"fmt"
	"math"
)

// PointMass is a unit point mass sliding along a curve under gravity with a
// drag force linear in speed. The heading theta is measured from the
// vertical and y grows downward, so in normalized units (g = 1):
//
//	x' = v sin(theta)
//	y' = v cos(theta)
//	v' = cos(theta) - friction*v
type PointMass struct {
	Friction float64
}

func NewPointMass(friction float64) *PointMass {
	return &PointMass{Friction: friction}
}

func (m *PointMass) Forcing(s Sample) [NumStates]float64 {
	sin, cos := math.Sincos(s.Theta)
	return [NumStates]float64{
		s.V * sin,
		s.V * cos,
		cos - m.Friction*s.V,
	}
}

// Partials returns the exact derivatives of Forcing. Entries the dynamics
// do not couple stay exactly zero, which the transcription layer relies on
// for its sparsity structure.
func (m *PointMass) Partials(s Sample) [NumStates][NumBlocks]float64 {
	sin, cos := math.Sincos(s.Theta)
	var d [NumStates][NumBlocks]float64
	d[StateX][WrtV] = sin
	d[StateX][WrtTheta] = s.V * cos
	d[StateY][WrtV] = cos
	d[StateY][WrtTheta] = -s.V * sin
	d[StateV][WrtV] = -m.Friction
	d[StateV][WrtTheta] = -sin
	return d
}

func (m *PointMass) GetParams() map[string]float64 {
	return map[string]float64{
		"friction": m.Friction,
	}
}

func (m *PointMass) SetParam(name string, value float64) error {
	switch name {
	case "friction":
		m.Friction = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
