package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/conserve/internal/config"
	"github.com/san-kum/conserve/internal/dynamo"
	"github.com/san-kum/conserve/internal/plot"
	"github.com/san-kum/conserve/internal/sim"
)

func TestFrameToSVG(t *testing.T) {
	vp := plot.NewViewport(-5, 5, -5, 5)
	f := sim.Evaluate(dynamo.State{M0: 2, V0: 3, M1: 1, V1: -1}, vp.Domain(), 64, config.DefaultConfig().Style)

	svg := FrameToSVG(f, vp, 400, 400)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an SVG document")
	}
	if n := strings.Count(svg, "<path "); n != 3 {
		t.Errorf("expected 3 paths, got %d", n)
	}
	if !strings.Contains(svg, `stroke="`+config.MomentumColor+`"`) || !strings.Contains(svg, `stroke="`+config.EnergyColor+`"`) {
		t.Error("missing series colors")
	}
	if !strings.Contains(svg, plot.MomentumLegend) || !strings.Contains(svg, plot.EnergyLegend) {
		t.Error("missing legend")
	}
	if !strings.Contains(svg, "m/s</text>") {
		t.Error("missing axis labels")
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Error("non-finite coordinates leaked into the SVG")
	}
}

func TestFrameToSVG_SkipsEmptySeries(t *testing.T) {
	vp := plot.NewViewport(-5, 5, -5, 5)
	f := sim.Evaluate(dynamo.State{M0: 2, V0: 3, M1: 0, V1: -1}, vp.Domain(), 64, config.DefaultConfig().Style)

	svg := FrameToSVG(f, vp, 200, 200)
	if strings.Contains(svg, "<path ") {
		t.Error("expected no paths for a zero-mass state")
	}
}

func TestPathData_Gaps(t *testing.T) {
	vp := plot.NewViewport(0, 10, 0, 10)
	points := []dynamo.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: math.NaN()}, {X: 4, Y: 4}, {X: 5, Y: 5}}

	d := pathData(points, vp, 100, 100)
	if strings.Count(d, "M") != 2 {
		t.Errorf("expected 2 subpaths, got %q", d)
	}
	if !strings.HasPrefix(d, "M10.0,90.0 L20.0,80.0") {
		t.Errorf("unexpected path %q", d)
	}
}
