package dynamo

import "errors"

// Domain errors. Curve evaluation never returns these; they are raised at
// the edges (configuration, CLI input, widget binding).
var (
	// ErrInvalidDomain indicates a sampling range with Min >= Max or non-finite bounds.
	ErrInvalidDomain = errors.New("dynamo: invalid sampling domain")

	// ErrSampleCount indicates fewer than two samples were requested.
	ErrSampleCount = errors.New("dynamo: sample count must be at least 2")

	// ErrUnknownField indicates a field name or index outside m0, v0, m1, v1.
	ErrUnknownField = errors.New("dynamo: unknown state field")

	// ErrUnknownPreset indicates a preset name with no matching state.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrParameterBounds indicates a slider range with min >= max.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)
