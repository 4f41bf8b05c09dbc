package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/conserve/internal/dynamo"
	"github.com/san-kum/conserve/internal/plot"
	"github.com/san-kum/conserve/internal/sim"
)

const (
	background = "#0a0a0a"
	gridColor  = "#222222"
	axisColor  = "#666666"
	textColor  = "#cccccc"
)

// FrameToSVG renders the curves of a frame inside the viewport. Non-finite
// samples break the path.
func FrameToSVG(f sim.Frame, vp plot.Viewport, width, height int) string {
	w, h := float64(width), float64(height)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	writeGrid(&sb, vp, w, h)

	for _, series := range f.Series() {
		d := pathData(series.Points, vp, w, h)
		if d == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" d="%s"/>
`, series.Style.Color, series.Style.Width, d))
	}

	writeLegend(&sb, f)
	sb.WriteString("</svg>")
	return sb.String()
}

func pathData(points []dynamo.Point, vp plot.Viewport, w, h float64) string {
	var sb strings.Builder
	for _, seg := range plot.Segments(points) {
		for i, p := range seg {
			x, y := vp.ToScreen(p, w, h)
			if i == 0 {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
	}
	return sb.String()
}

func writeGrid(sb *strings.Builder, vp plot.Viewport, w, h float64) {
	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">
`, gridColor))
	for _, t := range plot.Ticks(vp.XMin, vp.XMax, 11) {
		x, _ := vp.ToScreen(dynamo.Point{X: t}, w, h)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="0" x2="%.1f" y2="%.0f"/>
`, x, x, h))
	}
	for _, t := range plot.Ticks(vp.YMin, vp.YMax, 11) {
		_, y := vp.ToScreen(dynamo.Point{Y: t}, w, h)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f"/>
`, y, w, y))
	}
	sb.WriteString("</g>\n")

	ox, oy := vp.ToScreen(dynamo.Point{}, w, h)
	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1.5">
<line x1="%.1f" y1="0" x2="%.1f" y2="%.0f"/>
<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f"/>
</g>
`, axisColor, ox, ox, h, oy, w, oy))

	sb.WriteString(fmt.Sprintf(`<g fill="%s" font-family="monospace" font-size="10">
`, textColor))
	for _, t := range plot.Ticks(vp.XMin, vp.XMax, 11) {
		x, _ := vp.ToScreen(dynamo.Point{X: t}, w, h)
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.0f">%s</text>
`, x+2, h-4, plot.AxisLabel(t)))
	}
	for _, t := range plot.Ticks(vp.YMin, vp.YMax, 11) {
		_, y := vp.ToScreen(dynamo.Point{Y: t}, w, h)
		sb.WriteString(fmt.Sprintf(`<text x="4" y="%.1f">%s</text>
`, y-2, plot.AxisLabel(t)))
	}
	sb.WriteString("</g>\n")
}

func writeLegend(sb *strings.Builder, f sim.Frame) {
	entries := []dynamo.Series{f.Momentum, f.EnergyUpper}
	sb.WriteString(`<g font-family="monospace" font-size="12">
`)
	for i, s := range entries {
		y := 20 + i*18
		sb.WriteString(fmt.Sprintf(`<rect x="12" y="%d" width="16" height="4" fill="%s"/>
<text x="34" y="%d" fill="%s">%s</text>
`, y-4, s.Style.Color, y, textColor, s.Name))
	}
	sb.WriteString("</g>\n")
}
