package freeform

import "slices"

// maxSide bounds the side of a square matrix so that side*side fits in a
// uint64. No slice can come close to it.
const maxSide = 1 << 32

// MatrixElements is one axis of a basis matrix: the coefficients of a square
// matrix of side degree+1, stored row-major. Any length is accepted; the
// length is only checked against a degree when validating or extracting.
type MatrixElements struct {
	values []float64
}

// NewMatrixElements copies values into a new MatrixElements.
func NewMatrixElements(values []float64) MatrixElements {
	return MatrixElements{values: slices.Clone(values)}
}

// EmptyMatrixElements returns degree^2 zero coefficients.
func EmptyMatrixElements(degree uint) MatrixElements {
	n, ok := square(uint64(degree))
	if !ok {
		n = 0
	}
	return MatrixElements{values: make([]float64, n)}
}

// Len returns the number of stored coefficients.
func (m MatrixElements) Len() int { return len(m.values) }

// Values returns a copy of the coefficients.
func (m MatrixElements) Values() []float64 { return slices.Clone(m.values) }

// Fits reports whether the element count equals (degree+1)^2.
func (m MatrixElements) Fits(degree uint) bool {
	want, ok := elementCount(degree)
	return ok && uint64(len(m.values)) == want
}

// Row returns the 1-indexed row r of the matrix for the given degree. The
// boolean is false when r is outside [1, degree+1] or the element count does
// not fit the degree.
func (m MatrixElements) Row(r, degree uint) ([]float64, bool) {
	if !m.Fits(degree) || r == 0 || r > degree+1 {
		return nil, false
	}
	side := int(degree) + 1
	start := (int(r) - 1) * side
	return slices.Clone(m.values[start : start+side]), true
}

// Column returns the 1-indexed column c of the matrix for the given degree,
// under the same rules as Row.
func (m MatrixElements) Column(c, degree uint) ([]float64, bool) {
	if !m.Fits(degree) || c == 0 || c > degree+1 {
		return nil, false
	}
	side := int(degree) + 1
	col := make([]float64, 0, side)
	for i := int(c) - 1; i < len(m.values); i += side {
		col = append(col, m.values[i])
	}
	return col, true
}

// elementCount returns (degree+1)^2.
func elementCount(degree uint) (uint64, bool) {
	side := uint64(degree) + 1
	if side == 0 {
		return 0, false
	}
	return square(side)
}

func square(side uint64) (uint64, bool) {
	if side >= maxSide {
		return 0, false
	}
	return side * side, true
}
