package export

import (
	"fmt"
	"strings"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

// FieldToSVG draws U as a grid of gray squares, one per cell.
func FieldToSVG(f *dynamo.Field, scale float64) string {
	if f == nil {
		return ""
	}
	size := float64(f.N) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
`, size, size, size, size))

	for i := 0; i < f.N; i++ {
		for j := 0; j < f.N; j++ {
			g := Shade(f.U[f.Index(i, j)])
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#%02x%02x%02x"/>
`, float64(i)*scale, float64(j)*scale, scale, scale, g, g, g))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots a sampled series, such as mean U against step.
func SeriesToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for k := range xs {
		minX = min(minX, xs[k])
		maxX = max(maxX, xs[k])
		minY = min(minY, ys[k])
		maxY = max(maxY, ys[k])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for k := range xs {
		x := (xs[k] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[k]-minY)/rangeY*float64(height)

		if k == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
