package transcribe

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FirstDifference builds the n×(n+1) forward first-difference stencil: row
// i maps a trajectory s to s[i+1]-s[i]. The 1/dt scaling that would turn
// the product into a derivative estimate is deliberately left out; the
// residual assembly multiplies dt onto the forcing terms instead, so the
// operator contribution stays linear in the decision vector.
func FirstDifference(n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("transcribe: intervals must be positive, got %d", n)
	}
	d := mat.NewDense(n, n+1, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, -1)
		d.Set(i, i+1, 1)
	}
	return d, nil
}
