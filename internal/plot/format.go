package plot

import (
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/conserve/internal/dynamo"
)

const (
	MomentumLegend = "States with preserved momentum"
	EnergyLegend   = "States with preserved energy"
	Unit           = "m/s"
)

// AxisLabel formats a tick value with its unit suffix.
func AxisLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64) + " " + Unit
}

// Tooltip describes the hovered point as the velocities of both objects.
func Tooltip(p dynamo.Point) string {
	return fmt.Sprintf("v₁ = %.3f %s\nv₂ = %.3f %s", p.X, Unit, p.Y, Unit)
}

// Ticks returns round tick positions covering [lo, hi], at most max of them.
func Ticks(lo, hi float64, max int) []float64 {
	if max < 2 || !(hi > lo) || math.IsInf(hi-lo, 0) {
		return nil
	}
	step := niceStep((hi - lo) / float64(max-1))
	start := math.Ceil(lo/step) * step
	ticks := make([]float64, 0, max)
	for t := start; t <= hi+step*1e-9 && len(ticks) < max; t += step {
		// snap -0 and accumulated error
		v := math.Round(t/step) * step
		if v == 0 {
			v = 0
		}
		ticks = append(ticks, v)
	}
	return ticks
}

func niceStep(raw float64) float64 {
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	f := raw / exp
	switch {
	case f <= 1:
		return exp
	case f <= 2:
		return 2 * exp
	case f <= 5:
		return 5 * exp
	}
	return 10 * exp
}

// Segments splits points into runs of finite samples. Each run with at
// least one point is returned; renderers draw a polyline per run.
func Segments(points []dynamo.Point) [][]dynamo.Point {
	var segs [][]dynamo.Point
	start := -1
	for i, p := range points {
		if p.Finite() {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			segs = append(segs, points[start:i])
			start = -1
		}
	}
	if start >= 0 {
		segs = append(segs, points[start:])
	}
	return segs
}
