// Package dynamo provides the core data model for two-body collision states.
//
// The package defines the values shared by the curve generator, the frame
// controller and every renderer:
//
//   - [State]: masses and velocities of the two objects
//   - [Field]: index used by slider widgets to bind to a single scalar
//   - [Point]: one sampled (v₁, v₂) velocity pair
//   - [Domain]: horizontal sampling range supplied by the plot
//   - [Series]: a named, styled slice of points ready for rendering
//
// # Example
//
//	s := dynamo.State{M0: 2, V0: 3, M1: 1, V1: -1}
//	dom := dynamo.Domain{Min: -5, Max: 5}
//	for p := range physics.MomentumCurve(s, dom) {
//	    fmt.Println(p.X, p.Y)
//	}
//
// # Non-finite values
//
// Nothing in this package rejects zero or negative masses. Points computed
// from such states may hold NaN or ±Inf; renderers use [Point.Finite] to
// break polylines at those samples.
package dynamo
