package freeform

import "fmt"

// BasisMatrix is the characteristic matrix of a bmatrix curve (one U axis)
// or surface (U and V axes).
type BasisMatrix struct {
	u, v    MatrixElements
	surface bool
}

// NewCurveMatrix returns a single-axis matrix.
func NewCurveMatrix(u []float64) BasisMatrix {
	return BasisMatrix{u: NewMatrixElements(u)}
}

// NewSurfaceMatrix returns a two-axis matrix.
func NewSurfaceMatrix(u, v []float64) BasisMatrix {
	return BasisMatrix{u: NewMatrixElements(u), v: NewMatrixElements(v), surface: true}
}

func (m BasisMatrix) IsCurve() bool   { return !m.surface }
func (m BasisMatrix) IsSurface() bool { return m.surface }

// U returns the U axis coefficients.
func (m BasisMatrix) U() MatrixElements { return m.u }

// V returns the V axis coefficients; ok is false for curves.
func (m BasisMatrix) V() (MatrixElements, bool) { return m.v, m.surface }

// withU returns a copy with U replaced. A surface keeps its V axis.
func (m BasisMatrix) withU(u MatrixElements) BasisMatrix {
	m.u = u
	return m
}

// withV returns a surface carrying the current U and the given V.
func (m BasisMatrix) withV(v MatrixElements) BasisMatrix {
	m.v = v
	m.surface = true
	return m
}

// Validate checks the matrix against a degree. It returns ErrInvalidDegree
// when one is a curve and the other a surface, and ErrMatrixSizeMismatch when
// an axis does not hold (degree+1)^2 coefficients. U is checked before V.
func (m BasisMatrix) Validate(degree Degree) error {
	if m.surface != degree.IsSurface() {
		return fmt.Errorf("%w: %s matrix with %s degree %s",
			ErrInvalidDegree, arityName(m.surface), degree.arity(), degree)
	}
	if err := checkAxis("u", m.u, degree.U()); err != nil {
		return err
	}
	if m.surface {
		dv, _ := degree.V()
		return checkAxis("v", m.v, dv)
	}
	return nil
}

func checkAxis(axis string, elems MatrixElements, degree uint) error {
	if elems.Fits(degree) {
		return nil
	}
	want, _ := elementCount(degree)
	return fmt.Errorf("%w: %s axis has %d coefficients, degree %d needs %d",
		ErrMatrixSizeMismatch, axis, elems.Len(), degree, want)
}

// Row returns row r of every axis (U, then V for surfaces) using each axis's
// own degree component. The boolean is false if the matrix does not validate
// against degree or any axis has no such row.
func (m BasisMatrix) Row(r uint, degree Degree) ([][]float64, bool) {
	return m.extract(r, degree, MatrixElements.Row)
}

// Column is the column counterpart of Row.
func (m BasisMatrix) Column(c uint, degree Degree) ([][]float64, bool) {
	return m.extract(c, degree, MatrixElements.Column)
}

func (m BasisMatrix) extract(n uint, degree Degree, get func(MatrixElements, uint, uint) ([]float64, bool)) ([][]float64, bool) {
	if m.Validate(degree) != nil {
		return nil, false
	}
	u, ok := get(m.u, n, degree.U())
	if !ok {
		return nil, false
	}
	if !m.surface {
		return [][]float64{u}, true
	}
	dv, _ := degree.V()
	v, ok := get(m.v, n, dv)
	if !ok {
		return nil, false
	}
	return [][]float64{u, v}, true
}
