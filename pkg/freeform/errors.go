package freeform

import "errors"

// Structural errors. Parse returns these for the line being processed.
var (
	ErrInvalidParameters   = errors.New("invalid parameters")
	ErrInvalidBufferSize   = errors.New("invalid number of values")
	ErrInvalidKeyword      = errors.New("invalid keyword")
	ErrInvalidFreeFormType = errors.New("invalid free-form type")
	ErrInvalidFormType     = errors.New("statement not allowed for free-form type")
	ErrMissingKeyword      = errors.New("missing keyword")
	ErrMalformedDefinition = errors.New("malformed free-form definition")
)

// Semantic errors. Validate methods return these; several wrap a more
// specific cause from a lower level.
var (
	ErrCurveSurfaceMismatch          = errors.New("curve/surface mismatch")
	ErrFreeFormTypeMismatch          = errors.New("step and basis matrix disagree on curve/surface")
	ErrMatrixSizeMismatch            = errors.New("basis matrix size does not match degree")
	ErrInvalidMatrixSize             = errors.New("invalid basis matrix size")
	ErrInvalidDegree                 = errors.New("degree does not fit basis matrix")
	ErrCardinalDegreeNotEqualToThree = errors.New("cardinal spline degree must be 3")
)
