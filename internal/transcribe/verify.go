package transcribe

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// VerifyJacobian compares the analytic Jacobian at z against a central
// finite-difference approximation of the residuals and returns the largest
// absolute mismatch over all entries. It is the primary correctness oracle
// for a new model's Partials; anything above ~1e-6 for well-scaled inputs
// points at a wrong closed-form derivative.
func VerifyJacobian(tr *Transcriber, z []float64) (float64, error) {
	analytic, err := tr.DenseJacobian(z)
	if err != nil {
		return 0, err
	}

	m, n := analytic.Dims()
	numeric := mat.NewDense(m, n, nil)
	residuals := func(dst, x []float64) {
		f, err := tr.Residuals(x)
		if err != nil {
			// A perturbed point can trip the degenerate-step guard; poison
			// the column instead of crashing the sweep.
			for i := range dst {
				dst[i] = math.NaN()
			}
			return
		}
		copy(dst, f)
	}
	fd.Jacobian(numeric, residuals, z, &fd.JacobianSettings{
		Formula:    fd.Central,
		Concurrent: true,
	})

	var worst float64
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			diff := math.Abs(analytic.At(i, j) - numeric.At(i, j))
			if diff > worst || math.IsNaN(diff) {
				worst = diff
			}
		}
	}
	return worst, nil
}
