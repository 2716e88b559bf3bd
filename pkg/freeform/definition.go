package freeform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/freeform/pkg/keywords"
)

// cardinalDegree is the only degree a cardinal spline may have.
const cardinalDegree = 3

// Definition is a complete free-form curve or surface definition: the basis
// type, whether it is rational, and the degree. Parse produces it; Validate
// checks it.
type Definition struct {
	Type     FreeFormType
	Rational bool
	Degree   Degree
}

// NewDefinition assembles a definition from parts.
func NewDefinition(typ FreeFormType, rational bool, degree Degree) Definition {
	return Definition{Type: typ, Rational: rational, Degree: degree}
}

// IsSurface reports whether the degree describes a surface.
func (d Definition) IsSurface() bool { return d.Degree.IsSurface() }

// Validate checks the cross-field rules of the definition.
//
// A cardinal spline must have degree 3 on every axis
// (ErrCardinalDegreeNotEqualToThree). A basis matrix definition must have
// attributes that validate against the degree: size problems are reported as
// ErrInvalidMatrixSize and curve/surface disagreements as
// ErrCurveSurfaceMismatch, each wrapping the lower level cause. Other types
// are always valid.
func (d Definition) Validate() error {
	switch d.Type.Kind() {
	case KindCardinal:
		if !d.Degree.All(func(n uint) bool { return n == cardinalDegree }) {
			return fmt.Errorf("%w: got %s", ErrCardinalDegreeNotEqualToThree, d.Degree)
		}
	case KindBasisMatrix:
		attrs, _ := d.Type.Attributes()
		err := attrs.Validate(d.Degree)
		switch {
		case err == nil:
		case errors.Is(err, ErrMatrixSizeMismatch):
			return fmt.Errorf("%w: %w", ErrInvalidMatrixSize, err)
		case errors.Is(err, ErrFreeFormTypeMismatch):
			return fmt.Errorf("%w: %w", ErrCurveSurfaceMismatch, err)
		default:
			return err
		}
	}
	return nil
}

// Row returns row r (1-indexed) of each basis matrix axis, using the
// definition's own degree. The boolean is false for types other than basis
// matrix and wherever BasisMatrix.Row would report false.
func (d Definition) Row(r uint) ([][]float64, bool) {
	attrs, ok := d.Type.Attributes()
	if !ok {
		return nil, false
	}
	return attrs.Matrix().Row(r, d.Degree)
}

// Column is the column counterpart of Row.
func (d Definition) Column(c uint) ([][]float64, bool) {
	attrs, ok := d.Type.Attributes()
	if !ok {
		return nil, false
	}
	return attrs.Matrix().Column(c, d.Degree)
}

// Statements renders the definition as OBJ statements. Parsing the result
// yields an equal definition.
func (d Definition) Statements() []string {
	cstype := []string{keywords.CurveSurfaceType}
	if d.Rational {
		cstype = append(cstype, keywords.Rational)
	}
	cstype = append(cstype, d.Type.String())

	out := []string{
		strings.Join(cstype, " "),
		keywords.Degree + " " + d.Degree.String(),
	}
	attrs, ok := d.Type.Attributes()
	if !ok {
		return out
	}
	out = append(out, keywords.StepSize+" "+attrs.Step().String())
	m := attrs.Matrix()
	out = append(out, bmatStatement(keywords.AxisU, m.U()))
	if v, ok := m.V(); ok {
		out = append(out, bmatStatement(keywords.AxisV, v))
	}
	return out
}

func (d Definition) String() string {
	s := d.Type.String() + " " + arityName(d.IsSurface()) + " degree " + d.Degree.String()
	if d.Rational {
		s = "rational " + s
	}
	return s
}

func bmatStatement(axis string, elems MatrixElements) string {
	parts := []string{keywords.BasisMatrix, axis}
	for _, f := range elems.values {
		parts = append(parts, strconv.FormatFloat(f, 'g', -1, 64))
	}
	return strings.Join(parts, " ")
}
