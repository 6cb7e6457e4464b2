// Package viz renders terminal plots of trajectories and residuals.
package viz

import (
	"github.com/guptarohit/asciigraph"
)

// ResidualProfile plots the residual vector over its row index. Spikes
// show which constraint block a trial point violates.
func ResidualProfile(f []float64, width, height int) string {
	return asciigraph.Plot(f,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("residuals by row"))
}

// Descent plots the y trajectory with depth growing downward, so the
// terminal picture matches the physical drop.
func Descent(y []float64, width, height int) string {
	flipped := make([]float64, len(y))
	for i, v := range y {
		flipped[i] = -v
	}
	return asciigraph.Plot(flipped,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("descent profile (depth down)"))
}

// States plots the three state trajectories on one canvas.
func States(x, y, v []float64, width, height int) string {
	return asciigraph.PlotMany([][]float64{x, y, v},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption("x (red)  y (green)  v (blue)"))
}
