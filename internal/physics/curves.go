package physics

import (
	"iter"
	"math"

	"github.com/san-kum/conserve/internal/dynamo"
)

// Samples is the number of points each curve is evaluated at per frame.
const Samples = 512

// MomentumCurve samples the states with the same total momentum as s:
//
//	m0*v0 + m1*v1 = m0*x + m1*y  =>  y = m0*(v0 - x)/m1 + v1
//
// The sequence is lazy and may be ranged over any number of times.
func MomentumCurve(s dynamo.State, d dynamo.Domain) iter.Seq[dynamo.Point] {
	return MomentumCurveN(s, d, Samples)
}

func MomentumCurveN(s dynamo.State, d dynamo.Domain, n int) iter.Seq[dynamo.Point] {
	return sample(d, n, func(x float64) float64 {
		return MomentumAt(s, x)
	})
}

// MomentumAt evaluates the momentum line at x. m1 == 0 yields ±Inf or NaN.
func MomentumAt(s dynamo.State, x float64) float64 {
	return s.M0*(s.V0-x)/s.M1 + s.V1
}

// EnergyCurve samples both halves of the ellipse of states with the same
// kinetic energy as s:
//
//	m0*v0² + m1*v1² = m0*x² + m1*y²  =>  y = ±sqrt((d - m0*x²)/m1)
//
// Outside the reachable range the radicand is negative and the sample is NaN.
func EnergyCurve(s dynamo.State, d dynamo.Domain) (upper, lower iter.Seq[dynamo.Point]) {
	return EnergyCurveN(s, d, Samples)
}

func EnergyCurveN(s dynamo.State, d dynamo.Domain, n int) (upper, lower iter.Seq[dynamo.Point]) {
	upper = sample(d, n, func(x float64) float64 {
		return EnergyUpperAt(s, x)
	})
	lower = sample(d, n, func(x float64) float64 {
		return EnergyLowerAt(s, x)
	})
	return upper, lower
}

func EnergyUpperAt(s dynamo.State, x float64) float64 {
	k := EnergyConstant(s)
	return math.Sqrt((k - s.M0*x*x) / s.M1)
}

func EnergyLowerAt(s dynamo.State, x float64) float64 {
	return -EnergyUpperAt(s, x)
}

func sample(d dynamo.Domain, n int, f func(x float64) float64) iter.Seq[dynamo.Point] {
	return func(yield func(dynamo.Point) bool) {
		for i := 0; i < n; i++ {
			x := d.At(i, n)
			if !yield(dynamo.Point{X: x, Y: f(x)}) {
				return
			}
		}
	}
}

// Collect drains a curve into a slice.
func Collect(seq iter.Seq[dynamo.Point]) []dynamo.Point {
	return AppendPoints(make([]dynamo.Point, 0, Samples), seq)
}

// AppendPoints drains a curve onto dst.
func AppendPoints(dst []dynamo.Point, seq iter.Seq[dynamo.Point]) []dynamo.Point {
	for p := range seq {
		dst = append(dst, p)
	}
	return dst
}
