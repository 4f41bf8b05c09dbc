package physics

import (
	"math"

	"github.com/san-kum/conserve/internal/dynamo"
)

// Momentum returns the total momentum m0*v0 + m1*v1.
func Momentum(s dynamo.State) float64 {
	return s.M0*s.V0 + s.M1*s.V1
}

// Energy returns the total kinetic energy ½(m0*v0² + m1*v1²).
func Energy(s dynamo.State) float64 {
	return 0.5 * EnergyConstant(s)
}

// EnergyConstant returns d = m0*v0² + m1*v1², the right-hand side of the
// energy ellipse.
func EnergyConstant(s dynamo.State) float64 {
	return s.M0*s.V0*s.V0 + s.M1*s.V1*s.V1
}

// ReachableBound is the |x| where the energy ellipse meets y = 0. It is
// informational only; curves are always sampled over the full domain.
func ReachableBound(s dynamo.State) float64 {
	return math.Sqrt(EnergyConstant(s) / s.M0)
}

// ElasticOutcome returns the velocities after a perfectly elastic collision,
// the second intersection of the momentum line with the energy ellipse.
func ElasticOutcome(s dynamo.State) dynamo.Point {
	total := s.M0 + s.M1
	return dynamo.Point{
		X: ((s.M0-s.M1)*s.V0 + 2*s.M1*s.V1) / total,
		Y: ((s.M1-s.M0)*s.V1 + 2*s.M0*s.V0) / total,
	}
}

// InelasticOutcome returns the common velocity after a perfectly inelastic
// collision. It lies on the momentum line and on the diagonal x = y.
func InelasticOutcome(s dynamo.State) dynamo.Point {
	v := Momentum(s) / (s.M0 + s.M1)
	return dynamo.Point{X: v, Y: v}
}

// EnergyLoss is the kinetic energy lost in a perfectly inelastic collision.
func EnergyLoss(s dynamo.State) float64 {
	v := InelasticOutcome(s).X
	return Energy(s) - 0.5*(s.M0+s.M1)*v*v
}
