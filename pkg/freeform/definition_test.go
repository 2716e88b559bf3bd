package freeform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFreeFormType(t *testing.T) {
	for _, tok := range []string{"bmatrix", "bezier", "bspline", "cardinal", "taylor"} {
		typ, err := ParseFreeFormType(tok)
		require.NoError(t, err)
		assert.Equal(t, tok, typ.String())
	}

	typ, err := ParseFreeFormType("bmatrix")
	require.NoError(t, err)
	attrs, ok := typ.Attributes()
	require.True(t, ok)
	assert.Equal(t, DefaultBasisMatrixAttributes(), attrs)

	_, err = ParseFreeFormType("nurbs")
	assert.ErrorIs(t, err, ErrInvalidFreeFormType)
}

func TestFreeFormTypeWithAttributes(t *testing.T) {
	attrs := DefaultBasisMatrixAttributes().WithMatrixU(seq(0, 4))

	_, err := NewFreeFormType(KindBezier).WithAttributes(attrs)
	assert.ErrorIs(t, err, ErrInvalidFormType)

	typ, err := NewFreeFormType(KindBasisMatrix).WithAttributes(attrs)
	require.NoError(t, err)
	got, _ := typ.Attributes()
	assert.Equal(t, attrs, got)

	_, ok := NewFreeFormType(KindTaylor).Attributes()
	assert.False(t, ok)
}

func TestValidateCardinal(t *testing.T) {
	tests := []struct {
		name    string
		degree  Degree
		wantErr bool
	}{
		{name: "curve 3", degree: NewCurve[uint](3)},
		{name: "curve 2", degree: NewCurve[uint](2), wantErr: true},
		{name: "surface 3 3", degree: NewSurface[uint](3, 3)},
		{name: "surface 3 2", degree: NewSurface[uint](3, 2), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDefinition(NewFreeFormType(KindCardinal), false, tt.degree).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCardinalDegreeNotEqualToThree)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateOtherKinds(t *testing.T) {
	for _, k := range []Kind{KindBezier, KindBSpline, KindTaylor} {
		def := NewDefinition(NewFreeFormType(k), true, NewSurface[uint](7, 1))
		assert.NoError(t, def.Validate(), k.String())
	}
}

func TestValidateStepMismatch(t *testing.T) {
	attrs := NewBasisMatrixAttributes(NewCurve[uint](1), NewSurfaceMatrix(seq(0, 4), seq(0, 4)))
	def := NewDefinition(BasisMatrixType(attrs), false, NewSurface[uint](1, 1))

	err := def.Validate()
	assert.ErrorIs(t, err, ErrCurveSurfaceMismatch)
	assert.ErrorIs(t, err, ErrFreeFormTypeMismatch)
}

func TestDefinitionRowColumn(t *testing.T) {
	def, err := Parse(source(surfaceStatements("3 3")...))
	require.NoError(t, err)

	rows, ok := def.Row(2)
	require.True(t, ok)
	diff(t, [][]float64{{5, 6, 7, 8}, {21, 22, 23, 24}}, rows)

	cols, ok := def.Column(1)
	require.True(t, ok)
	diff(t, [][]float64{{1, 5, 9, 13}, {17, 21, 25, 29}}, cols)

	_, ok = def.Row(5)
	assert.False(t, ok)
	_, ok = def.Column(0)
	assert.False(t, ok)

	bezier := NewDefinition(NewFreeFormType(KindBezier), false, NewCurve[uint](3))
	_, ok = bezier.Row(1)
	assert.False(t, ok)

	invalid, err := Parse(source(surfaceStatements("3 2")...))
	require.NoError(t, err)
	_, ok = invalid.Row(1)
	assert.False(t, ok)
}

func TestDefinitionStatementsRoundTrip(t *testing.T) {
	defs := map[string][]string{
		"surface":  surfaceStatements("3 3"),
		"rational": {"cstype rat taylor", "deg 4"},
		"curve":    {"cstype bmatrix", "deg 1", "step 1", "bmat u 0.5 -1 1e-3 2"},
	}

	for name, stmts := range defs {
		t.Run(name, func(t *testing.T) {
			want, err := Parse(source(stmts...))
			require.NoError(t, err)

			got, err := Parse(source(want.Statements()...))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDefinitionStatements(t *testing.T) {
	def, err := Parse(source("cstype bmatrix", "deg 1", "step 2", "bmat u 1 0 0 1"))
	require.NoError(t, err)
	diff(t, []string{
		"cstype bmatrix",
		"deg 1",
		"step 2",
		"bmat u 1 0 0 1",
	}, def.Statements())
	assert.Equal(t, "bmatrix curve degree 1", def.String())
}

func TestRecordRoundTrip(t *testing.T) {
	def, err := Parse(source(surfaceStatements("3 3")...))
	require.NoError(t, err)

	rec := def.Record()
	assert.Equal(t, "bmatrix", rec.Type)
	diff(t, []uint{3, 3}, rec.Degree)
	diff(t, []uint{3, 3}, rec.Step)
	require.Len(t, rec.Matrix, 2)
	diff(t, seq(17, 16), rec.Matrix[1])

	got, err := rec.Definition()
	require.NoError(t, err)
	assert.Equal(t, def, got)

	plain := NewDefinition(NewFreeFormType(KindBSpline), true, NewCurve[uint](2))
	rec = plain.Record()
	assert.Nil(t, rec.Step)
	assert.Nil(t, rec.Matrix)
	got, err = rec.Definition()
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestRecordDefinitionErrors(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr error
	}{
		{name: "unknown type", rec: Record{Type: "nurbs", Degree: []uint{3}}, wantErr: ErrInvalidFreeFormType},
		{name: "no degree", rec: Record{Type: "bezier"}, wantErr: ErrInvalidBufferSize},
		{name: "step on bezier", rec: Record{Type: "bezier", Degree: []uint{3}, Step: []uint{1}}, wantErr: ErrInvalidFormType},
		{name: "three steps", rec: Record{Type: "bmatrix", Degree: []uint{3}, Step: []uint{1, 2, 3}}, wantErr: ErrInvalidBufferSize},
		{name: "three axes", rec: Record{Type: "bmatrix", Degree: []uint{3}, Matrix: [][]float64{{1}, {2}, {3}}}, wantErr: ErrInvalidBufferSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rec.Definition()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
