package plot

import (
	"math"

	"github.com/san-kum/conserve/internal/dynamo"
)

const (
	minSpan = 1e-3
	maxSpan = 1e6
)

// Viewport is the visible window of the velocity plane.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

func NewViewport(xMin, xMax, yMin, yMax float64) Viewport {
	return Viewport{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
}

// Domain is the x-range handed to the curve generator each frame.
func (v Viewport) Domain() dynamo.Domain {
	return dynamo.Domain{Min: v.XMin, Max: v.XMax}
}

func (v Viewport) Width() float64  { return v.XMax - v.XMin }
func (v Viewport) Height() float64 { return v.YMax - v.YMin }

func (v Viewport) Center() dynamo.Point {
	return dynamo.Point{X: (v.XMin + v.XMax) / 2, Y: (v.YMin + v.YMax) / 2}
}

// Pan shifts the viewport by a fraction of its size.
func (v Viewport) Pan(fx, fy float64) Viewport {
	dx, dy := fx*v.Width(), fy*v.Height()
	return Viewport{XMin: v.XMin + dx, XMax: v.XMax + dx, YMin: v.YMin + dy, YMax: v.YMax + dy}
}

// PanBy shifts the viewport by data units.
func (v Viewport) PanBy(dx, dy float64) Viewport {
	return Viewport{XMin: v.XMin + dx, XMax: v.XMax + dx, YMin: v.YMin + dy, YMax: v.YMax + dy}
}

// Zoom scales the viewport about a fixed point. factor < 1 zooms in.
func (v Viewport) Zoom(factor float64, about dynamo.Point) Viewport {
	if factor <= 0 || math.IsNaN(factor) {
		return v
	}
	w, h := v.Width()*factor, v.Height()*factor
	if w < minSpan || h < minSpan || w > maxSpan || h > maxSpan {
		return v
	}
	return Viewport{
		XMin: about.X - (about.X-v.XMin)*factor,
		XMax: about.X + (v.XMax-about.X)*factor,
		YMin: about.Y - (about.Y-v.YMin)*factor,
		YMax: about.Y + (v.YMax-about.Y)*factor,
	}
}

// Fit widens one axis so one data unit covers the same screen distance on
// both axes. aspect is screen width / screen height in pixels.
func (v Viewport) Fit(aspect float64) Viewport {
	if aspect <= 0 {
		return v
	}
	c := v.Center()
	w, h := v.Width(), v.Height()
	if w/h < aspect {
		w = h * aspect
	} else {
		h = w / aspect
	}
	return Viewport{XMin: c.X - w/2, XMax: c.X + w/2, YMin: c.Y - h/2, YMax: c.Y + h/2}
}

// ToScreen maps a data point into a w×h pixel rectangle with y growing down.
func (v Viewport) ToScreen(p dynamo.Point, w, h float64) (float64, float64) {
	sx := (p.X - v.XMin) / v.Width() * w
	sy := h - (p.Y-v.YMin)/v.Height()*h
	return sx, sy
}

func (v Viewport) FromScreen(sx, sy, w, h float64) dynamo.Point {
	return dynamo.Point{
		X: v.XMin + sx/w*v.Width(),
		Y: v.YMin + (h-sy)/h*v.Height(),
	}
}

func (v Viewport) Contains(p dynamo.Point) bool {
	return p.X >= v.XMin && p.X <= v.XMax && p.Y >= v.YMin && p.Y <= v.YMax
}
