package freeform

import "fmt"

// Record is the flat, serializable form of a Definition used for JSON and
// YAML output and for storage. Step and Matrix are set only for basis matrix
// definitions; Matrix holds one row per axis (U, then V).
type Record struct {
	Type     string      `json:"type" yaml:"type"`
	Rational bool        `json:"rational,omitempty" yaml:"rational,omitempty"`
	Degree   []uint      `json:"degree" yaml:"degree,flow"`
	Step     []uint      `json:"step,omitempty" yaml:"step,omitempty,flow"`
	Matrix   [][]float64 `json:"matrix,omitempty" yaml:"matrix,omitempty"`
}

// Record flattens the definition.
func (d Definition) Record() Record {
	rec := Record{
		Type:     d.Type.String(),
		Rational: d.Rational,
		Degree:   d.Degree.Components(),
	}
	attrs, ok := d.Type.Attributes()
	if !ok {
		return rec
	}
	rec.Step = attrs.Step().Components()
	m := attrs.Matrix()
	rec.Matrix = [][]float64{m.U().Values()}
	if v, ok := m.V(); ok {
		rec.Matrix = append(rec.Matrix, v.Values())
	}
	return rec
}

// Definition rebuilds the definition a record was made from. It checks shape
// only: token counts and type names. Call Validate on the result for the
// semantic rules.
func (r Record) Definition() (Definition, error) {
	typ, err := ParseFreeFormType(r.Type)
	if err != nil {
		return Definition{}, err
	}
	degree, err := uvPairOf(r.Degree)
	if err != nil {
		return Definition{}, fmt.Errorf("degree: %w", err)
	}
	def := NewDefinition(typ, r.Rational, degree)

	attrs, ok := typ.Attributes()
	if !ok {
		if len(r.Step) > 0 || len(r.Matrix) > 0 {
			return Definition{}, fmt.Errorf("%w: %s has no basis matrix", ErrInvalidFormType, typ)
		}
		return def, nil
	}
	if len(r.Step) > 0 {
		if attrs, err = attrs.WithStep(r.Step); err != nil {
			return Definition{}, fmt.Errorf("step: %w", err)
		}
	}
	switch len(r.Matrix) {
	case 0:
	case 1:
		attrs = attrs.WithMatrixU(r.Matrix[0])
	case 2:
		attrs = attrs.WithMatrixU(r.Matrix[0]).WithMatrixV(r.Matrix[1])
	default:
		return Definition{}, fmt.Errorf("matrix: %w: want 1 or 2 axes, got %d", ErrInvalidBufferSize, len(r.Matrix))
	}
	def.Type = BasisMatrixType(attrs)
	return def, nil
}
