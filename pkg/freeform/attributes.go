package freeform

import (
	"errors"
	"fmt"
)

// BasisMatrixAttributes is the extra data carried by the bmatrix free-form
// type: a step and a basis matrix. The two are constructed independently and
// may disagree on curve versus surface; Validate reports that.
type BasisMatrixAttributes struct {
	step   Step
	matrix BasisMatrix
}

// NewBasisMatrixAttributes pairs a step with a matrix.
func NewBasisMatrixAttributes(step Step, matrix BasisMatrix) BasisMatrixAttributes {
	return BasisMatrixAttributes{step: step, matrix: matrix}
}

// DefaultBasisMatrixAttributes returns the starting point used when cstype
// bmatrix is read: an empty curve matrix and a zero curve step.
func DefaultBasisMatrixAttributes() BasisMatrixAttributes {
	return BasisMatrixAttributes{
		step:   NewCurve[uint](0),
		matrix: BasisMatrix{u: EmptyMatrixElements(0)},
	}
}

func (a BasisMatrixAttributes) Step() Step          { return a.step }
func (a BasisMatrixAttributes) Matrix() BasisMatrix { return a.matrix }

// WithMatrixU returns attributes whose matrix has U replaced by values. A
// surface matrix keeps its V axis; a curve stays a curve.
func (a BasisMatrixAttributes) WithMatrixU(values []float64) BasisMatrixAttributes {
	a.matrix = a.matrix.withU(NewMatrixElements(values))
	return a
}

// WithMatrixV returns attributes whose matrix has V set to values. A curve
// matrix becomes a surface that keeps its U axis.
func (a BasisMatrixAttributes) WithMatrixV(values []float64) BasisMatrixAttributes {
	a.matrix = a.matrix.withV(NewMatrixElements(values))
	return a
}

// WithStep returns attributes with a curve step (one value) or a surface step
// (two values). Any other count returns ErrInvalidBufferSize.
func (a BasisMatrixAttributes) WithStep(values []uint) (BasisMatrixAttributes, error) {
	step, err := uvPairOf(values)
	if err != nil {
		return a, err
	}
	a.step = step
	return a, nil
}

// Validate checks the matrix against degree, then the step against the
// matrix. Size failures wrap ErrMatrixSizeMismatch; a matrix whose shape
// disagrees with the degree wraps ErrCurveSurfaceMismatch; a step whose shape
// disagrees with the matrix wraps ErrFreeFormTypeMismatch.
func (a BasisMatrixAttributes) Validate(degree Degree) error {
	if err := a.matrix.Validate(degree); err != nil {
		if errors.Is(err, ErrInvalidDegree) {
			return fmt.Errorf("%w: %w", ErrCurveSurfaceMismatch, err)
		}
		return err
	}
	if a.step.IsSurface() != a.matrix.IsSurface() {
		return fmt.Errorf("%w: %s step with %s matrix",
			ErrFreeFormTypeMismatch, a.step.arity(), arityName(a.matrix.IsSurface()))
	}
	return nil
}
