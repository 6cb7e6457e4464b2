package dynamics

// Block indices of the decision variables a forcing term may depend on.
// Partials returns derivatives in this order.
const (
	WrtX = iota
	WrtY
	WrtV
	WrtTheta
	NumBlocks
)

// State equation indices: horizontal position, vertical position, speed.
const (
	StateX = iota
	StateY
	StateV
	NumStates
)

// Sample holds the value of every state and control at one collocation
// point.
type Sample struct {
	X, Y, V, Theta float64
}

// Model describes the forcing side of the state equations. The transcribed
// residual for state s over interval i is (D·s)[i] - dt*f_s[i], so Forcing
// returns f at the sample opening the interval and Partials its exact
// derivatives with respect to (x, y, v, theta).
type Model interface {
	Forcing(s Sample) [NumStates]float64
	Partials(s Sample) [NumStates][NumBlocks]float64
}
