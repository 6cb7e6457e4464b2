package viz

import (
	"strings"
	"testing"
)

func TestResidualProfile(t *testing.T) {
	out := ResidualProfile([]float64{0, 1, 0, -1, 0}, 40, 8)
	if !strings.Contains(out, "residuals by row") {
		t.Error("missing caption")
	}
	if len(strings.Split(out, "\n")) < 8 {
		t.Error("plot shorter than requested height")
	}
}

func TestDescent(t *testing.T) {
	out := Descent([]float64{0, 0.5, 1.2, 2}, 40, 8)
	if !strings.Contains(out, "descent profile") {
		t.Error("missing caption")
	}
}

func TestStates(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 2}
	v := []float64{0, 1.4, 2}
	out := States(x, y, v, 40, 8)
	if out == "" {
		t.Error("empty plot")
	}
}
