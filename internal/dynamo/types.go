package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// State holds mass and velocity of the two objects. The zero value is the
// startup state.
type State struct {
	M0 float64 `json:"m0" yaml:"m0"`
	V0 float64 `json:"v0" yaml:"v0"`
	M1 float64 `json:"m1" yaml:"m1"`
	V1 float64 `json:"v1" yaml:"v1"`
}

type Field int

const (
	FieldM0 Field = iota
	FieldV0
	FieldM1
	FieldV1
)

// Fields lists every field in slider order.
var Fields = []Field{FieldM0, FieldV0, FieldM1, FieldV1}

var fieldNames = [...]string{"m0", "v0", "m1", "v1"}

func (f Field) Name() string {
	if f < FieldM0 || f > FieldV1 {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Label is the slider caption: "Mass" or "Velocity".
func (f Field) Label() string {
	if f == FieldM0 || f == FieldM1 {
		return "Mass"
	}
	return "Velocity"
}

// Object returns 0 for object 1 fields and 1 for object 2 fields.
func (f Field) Object() int {
	if f == FieldM1 || f == FieldV1 {
		return 1
	}
	return 0
}

func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (s State) Get(f Field) float64 {
	switch f {
	case FieldM0:
		return s.M0
	case FieldV0:
		return s.V0
	case FieldM1:
		return s.M1
	case FieldV1:
		return s.V1
	}
	return 0
}

// Set updates one field in place. No validation is performed.
func (s *State) Set(f Field, v float64) error {
	switch f {
	case FieldM0:
		s.M0 = v
	case FieldV0:
		s.V0 = v
	case FieldM1:
		s.M1 = v
	case FieldV1:
		s.V1 = v
	default:
		return fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	return nil
}

// Clamp returns a copy with every field limited to [lo, hi] independently.
func (s State) Clamp(lo, hi float64) State {
	return State{
		M0: clamp(s.M0, lo, hi),
		V0: clamp(s.V0, lo, hi),
		M1: clamp(s.M1, lo, hi),
		V1: clamp(s.V1, lo, hi),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s State) String() string {
	return fmt.Sprintf("m0=%.3f v0=%.3f m1=%.3f v1=%.3f", s.M0, s.V0, s.M1, s.V1)
}

// Point is one sample in velocity space: X is v₁, Y is v₂.
type Point struct {
	X, Y float64
}

func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Domain is the horizontal range curves are sampled over. It comes from
// the plot at render time.
type Domain struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (d Domain) Valid() bool {
	if math.IsNaN(d.Min) || math.IsNaN(d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
		return false
	}
	return d.Min < d.Max
}

func (d Domain) Validate() error {
	if !d.Valid() {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidDomain, d.Min, d.Max)
	}
	return nil
}

// At returns the i-th of n evenly spaced values from Min to Max inclusive.
// It matches Grid element for element.
func (d Domain) At(i, n int) float64 {
	if n < 2 {
		return d.Min
	}
	if i == n-1 {
		return d.Max
	}
	step := (d.Max - d.Min) / float64(n-1)
	return d.Min + float64(i)*step
}

// Grid returns n evenly spaced values from Min to Max inclusive.
func (d Domain) Grid(n int) []float64 {
	if n < 2 {
		return []float64{d.Min}
	}
	return floats.Span(make([]float64, n), d.Min, d.Max)
}

func (d Domain) Width() float64 { return d.Max - d.Min }

// Style is the stroke a plot uses for a series. Color is "#rrggbb".
type Style struct {
	Color string  `json:"color" yaml:"color"`
	Width float64 `json:"width" yaml:"width"`
}

type Series struct {
	Name   string
	Style  Style
	Points []Point
}

// Finite reports how many points of the series can be drawn.
func (s Series) Finite() int {
	n := 0
	for _, p := range s.Points {
		if p.Finite() {
			n++
		}
	}
	return n
}
