package export

import (
	"fmt"
	"strings"
)

// TrajectorySVG renders the (x, y) path as an SVG polyline. The y axis
// points down to match the problem's convention, which is also SVG's.
func TrajectorySVG(x, y []float64, width, height int, strokeColor string) string {
	if len(x) < 2 || len(x) != len(y) {
		return ""
	}

	minX, maxX := x[0], x[0]
	minY, maxY := y[0], y[0]
	for i := range x {
		if x[i] < minX {
			minX = x[i]
		}
		if x[i] > maxX {
			maxX = x[i]
		}
		if y[i] < minY {
			minY = y[i]
		}
		if y[i] > maxY {
			maxY = y[i]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range x {
		px := (x[i] - minX) / rangeX * float64(width)
		py := (y[i] - minY) / rangeY * float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
