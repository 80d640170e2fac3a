package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/viz"
)

// SVG overlays the trajectories on one canvas with a zero-height line and a legend.
func SVG(w io.Writer, trs []*dynamo.Trajectory, width, height int) error {
	if len(trs) == 0 {
		return fmt.Errorf("export: nothing to draw")
	}
	if width <= 0 || height <= 0 {
		width, height = 800, 480
	}

	// Find bounds
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := 0.0, 0.0
	for _, tr := range trs {
		for i := 0; i < tr.Len(); i++ {
			minX = math.Min(minX, tr.Xs[i])
			maxX = math.Max(maxX, tr.Xs[i])
			minY = math.Min(minY, tr.Ys[i])
			maxY = math.Max(maxY, tr.Ys[i])
		}
	}

	// Add padding
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

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<title>%s</title>
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height, viz.Title))

	// ground
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#808080" stroke-width="1"/>
`, py(0), width, py(0)))

	for i, tr := range trs {
		dash := ""
		if i%2 == 1 {
			dash = ` stroke-dasharray="6,4"`
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"%s d="M`, viz.MethodHex(i), dash))
		for j := 0; j < tr.Len(); j++ {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(tr.Xs[j]), py(tr.Ys[j])))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(tr.Xs[j]), py(tr.Ys[j])))
			}
		}
		sb.WriteString("\"/>\n")
	}

	// legend
	for i, tr := range trs {
		y := 20 + 18*i
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>
<text x="%d" y="%d" font-family="sans-serif" font-size="12">%s</text>
`, width-150, y, width-125, y, viz.MethodHex(i), width-118, y+4, viz.DisplayName(tr.Method)))
	}

	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="sans-serif" font-size="12" text-anchor="middle">%s</text>
<text x="12" y="%d" font-family="sans-serif" font-size="12" text-anchor="middle" transform="rotate(-90 12 %d)">%s</text>
</svg>
`, width/2, height-6, viz.XLabel, height/2, height/2, viz.YLabel))

	_, err := io.WriteString(w, sb.String())
	return err
}
