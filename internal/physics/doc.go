// Package physics evaluates the conservation curves of a two-body collision.
//
// Given a [dynamo.State] every function here is pure:
//
//   - [MomentumCurve]: line of (v₁, v₂) pairs with the initial total momentum
//   - [EnergyCurve]: upper and lower halves of the constant-energy ellipse
//   - [ElasticOutcome], [InelasticOutcome]: closed-form collision results
//
// Curves are returned as lazy [iter.Seq] values sampled at [Samples] evenly
// spaced x positions over a host-supplied [dynamo.Domain]:
//
//	upper, lower := physics.EnergyCurve(state, dynamo.Domain{Min: -5, Max: 5})
//	for p := range upper {
//	    ...
//	}
//
// # Non-finite samples
//
// Zero m1 divides by zero and points outside the reachable range take the
// square root of a negative number. Both produce NaN or ±Inf samples which
// are returned as-is; renderers skip them.
package physics
