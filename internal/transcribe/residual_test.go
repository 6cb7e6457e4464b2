package transcribe

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/trajopt/internal/dynamics"
)

func newTestTranscriber(t *testing.T, n int, friction float64) *Transcriber {
	t.Helper()
	d, err := FirstDifference(n)
	if err != nil {
		t.Fatalf("operator: %v", err)
	}
	tr, err := New(dynamics.NewPointMass(friction), Params{T0: 0, N: n}, d, Pattern{})
	if err != nil {
		t.Fatalf("new transcriber: %v", err)
	}
	return tr
}

// straightLine builds the decision vector of a horizontal unit-speed
// trajectory: theta = pi/2 everywhere, x[i] = i, y = 0, tf = n (dt = 1).
// It satisfies the frictionless discretized dynamics exactly up to the
// rounding in cos(pi/2).
func straightLine(n int) []float64 {
	l := NewLayout(n)
	z := make([]float64, l.Decision())
	for i := 0; i <= n; i++ {
		z[l.ColX(i)] = float64(i)
		z[l.ColV(i)] = 1
	}
	for i := 0; i < n; i++ {
		z[l.ColTheta(i)] = math.Pi / 2
	}
	z[l.ColTf()] = float64(n)
	return z
}

func TestResidualsStraightLine(t *testing.T) {
	n := 2
	tr := newTestTranscriber(t, n, 0)
	l := tr.Layout()

	f, err := tr.Residuals(straightLine(n))
	if err != nil {
		t.Fatalf("residuals: %v", err)
	}

	if len(f) != l.Residual() {
		t.Fatalf("len(F) = %d, want %d", len(f), l.Residual())
	}
	for k := 0; k < dynamics.NumStates; k++ {
		for i := 0; i < n; i++ {
			if r := f[l.RowDyn(k, i)]; math.Abs(r) > 1e-12 {
				t.Errorf("dynamics residual [%d][%d] = %g, want ~0", k, i, r)
			}
		}
	}
}

func TestResidualsPerturbed(t *testing.T) {
	n := 2
	tr := newTestTranscriber(t, n, 0)
	l := tr.Layout()

	z := straightLine(n)
	z[l.ColX(1)] += 0.1

	f, err := tr.Residuals(z)
	if err != nil {
		t.Fatalf("residuals: %v", err)
	}
	// (x1-x0) grows by 0.1, (x2-x1) shrinks by the same.
	if got := f[l.RowDyn(dynamics.StateX, 0)]; math.Abs(got-0.1) > 1e-12 {
		t.Errorf("dyn_x[0] = %g, want 0.1", got)
	}
	if got := f[l.RowDyn(dynamics.StateX, 1)]; math.Abs(got+0.1) > 1e-12 {
		t.Errorf("dyn_x[1] = %g, want -0.1", got)
	}
}

func TestResidualsObjectiveAndBoundaries(t *testing.T) {
	n := 4
	tr := newTestTranscriber(t, n, 0.2)
	l := tr.Layout()

	z := make([]float64, l.Decision())
	for i := range z {
		z[i] = 0.1*float64(i) - 0.7
	}
	z[l.ColTf()] = 3.75

	f, err := tr.Residuals(z)
	if err != nil {
		t.Fatalf("residuals: %v", err)
	}

	// The objective proxy and boundary rows carry decision entries through
	// exactly, no discretization involved.
	if f[l.RowObjective()] != 3.75 {
		t.Errorf("F[0] = %g, want tf exactly", f[l.RowObjective()])
	}
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"x0", f[l.RowStartX()], z[l.ColX(0)]},
		{"y0", f[l.RowStartY()], z[l.ColY(0)]},
		{"v0", f[l.RowStartV()], z[l.ColV(0)]},
		{"xN", f[l.RowEndX()], z[l.ColX(n)]},
		{"yN", f[l.RowEndY()], z[l.ColY(n)]},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s residual = %g, want %g exactly", c.name, c.got, c.want)
		}
	}
}

func TestResidualsDegenerateFinalTime(t *testing.T) {
	n := 3
	tr := newTestTranscriber(t, n, 0)
	l := tr.Layout()

	for _, tf := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		z := straightLine(n)
		z[l.ColTf()] = tf
		_, err := tr.Residuals(z)
		if !errors.Is(err, ErrDegenerateStep) {
			t.Errorf("tf=%g: err = %v, want ErrDegenerateStep", tf, err)
		}
	}
}

func TestResidualsBadVectorLength(t *testing.T) {
	tr := newTestTranscriber(t, 3, 0)
	if _, err := tr.Residuals(make([]float64, 7)); err == nil {
		t.Error("expected error for wrong decision-vector length")
	}
}

func TestResidualsDoNotMutateInput(t *testing.T) {
	n := 3
	tr := newTestTranscriber(t, n, 0.1)
	z := straightLine(n)
	before := make([]float64, len(z))
	copy(before, z)

	if _, err := tr.Residuals(z); err != nil {
		t.Fatalf("residuals: %v", err)
	}
	for i := range z {
		if z[i] != before[i] {
			t.Fatalf("decision vector mutated at %d", i)
		}
	}
}
