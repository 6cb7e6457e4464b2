package transcribe

import "fmt"

// Vars are named views into one decision vector. The slices alias the
// vector's backing array; callers must treat them as read-only.
type Vars struct {
	X, Y, V []float64 // n+1 samples each
	Theta   []float64 // n samples
	Tf      float64
}

// SplitVars partitions a decision vector into its five blocks. The vector
// length must be exactly 4n+4; anything else is a caller defect.
func SplitVars(z []float64, n int) (Vars, error) {
	if want := NewLayout(n).Decision(); len(z) != want {
		return Vars{}, fmt.Errorf("transcribe: decision vector has %d entries, want %d for %d intervals", len(z), want, n)
	}
	m := n + 1
	return Vars{
		X:     z[0:m],
		Y:     z[m : 2*m],
		V:     z[2*m : 3*m],
		Theta: z[3*m : 3*m+n],
		Tf:    z[3*m+n],
	}, nil
}

// Layout maps block coordinates of the residual and decision vectors to
// flat indices. All offsets are fixed functions of the interval count.
type Layout struct {
	n int
}

func NewLayout(n int) Layout { return Layout{n: n} }

// Decision returns the decision-vector length, 4n+4.
func (l Layout) Decision() int { return 4*l.n + 4 }

// Residual returns the residual-vector length, 3n+6.
func (l Layout) Residual() int { return 3*l.n + 6 }

func (l Layout) ColX(i int) int     { return i }
func (l Layout) ColY(i int) int     { return l.n + 1 + i }
func (l Layout) ColV(i int) int     { return 2*(l.n+1) + i }
func (l Layout) ColTheta(i int) int { return 3*(l.n+1) + i }
func (l Layout) ColTf() int         { return 4*l.n + 3 }

// ColState returns the column of sample i within the block of state k.
func (l Layout) ColState(k, i int) int { return k*(l.n+1) + i }

// RowObjective is the objective-proxy row.
func (l Layout) RowObjective() int { return 0 }

// RowDyn returns the residual row of interval i of state block k.
func (l Layout) RowDyn(k, i int) int { return 1 + k*l.n + i }

func (l Layout) RowStartX() int { return 3*l.n + 1 }
func (l Layout) RowStartY() int { return 3*l.n + 2 }
func (l Layout) RowStartV() int { return 3*l.n + 3 }
func (l Layout) RowEndX() int   { return 3*l.n + 4 }
func (l Layout) RowEndY() int   { return 3*l.n + 5 }
