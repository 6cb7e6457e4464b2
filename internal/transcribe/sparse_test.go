package transcribe

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPatternExtractOrder(t *testing.T) {
	// A deliberately permuted mask: extraction must follow mask order, not
	// matrix order.
	g := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	p, err := NewPattern([]int{2, 0, 1, 2}, []int{2, 1, 0, 0})
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}

	got := p.Extract(g, nil)
	want := []float64{9, 2, 4, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("G[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestPatternExtractReuseDst(t *testing.T) {
	g := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	p, _ := NewPattern([]int{0, 1}, []int{1, 0})

	dst := make([]float64, 2)
	out := p.Extract(g, dst)
	if &out[0] != &dst[0] {
		t.Error("Extract did not reuse dst")
	}
	if dst[0] != 2 || dst[1] != 3 {
		t.Errorf("dst = %v, want [2 3]", dst)
	}
}

func TestPatternLengthMismatch(t *testing.T) {
	if _, err := NewPattern([]int{0, 1}, []int{0}); err == nil {
		t.Error("expected error for mismatched index slices")
	}
}

func TestPatternCovers(t *testing.T) {
	g := mat.NewDense(2, 3, nil)
	g.Set(0, 1, 5)
	g.Set(1, 2, -3)

	full, _ := NewPattern([]int{0, 1, 1}, []int{1, 2, 0})
	if err := full.Covers(g); err != nil {
		t.Errorf("superset pattern rejected: %v", err)
	}

	missing, _ := NewPattern([]int{0}, []int{1})
	if err := missing.Covers(g); err == nil {
		t.Error("pattern missing a nonzero accepted")
	}
}

func TestCheckPattern(t *testing.T) {
	n := 3
	tr := newTestTranscriber(t, n, 0.1)
	// The test transcriber carries an empty pattern; any analytic nonzero
	// must trip the validation.
	if err := tr.CheckPattern(genericPoint(n)); err == nil {
		t.Error("empty pattern passed validation against a populated Jacobian")
	}
}
