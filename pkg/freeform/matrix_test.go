package freeform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyMatrixElements(t *testing.T) {
	assert.Equal(t, 0, EmptyMatrixElements(0).Len())
	assert.Equal(t, 9, EmptyMatrixElements(3).Len())
	assert.Equal(t, []float64{0, 0, 0, 0}, EmptyMatrixElements(2).Values())
}

func TestMatrixElementsCopiesInput(t *testing.T) {
	in := []float64{1, 2, 3, 4}
	m := NewMatrixElements(in)
	in[0] = 99
	out := m.Values()
	out[1] = 99
	diff(t, []float64{1, 2, 3, 4}, m.Values())
}

func TestMatrixElementsRow(t *testing.T) {
	for d := uint(0); d <= 5; d++ {
		side := int(d) + 1
		values := seq(0, side*side)
		m := NewMatrixElements(values)
		for r := uint(1); r <= d+1; r++ {
			got, ok := m.Row(r, d)
			require.True(t, ok, "degree %d row %d", d, r)
			start := (int(r) - 1) * side
			diff(t, values[start:start+side], got)
		}
		_, ok := m.Row(0, d)
		assert.False(t, ok)
		_, ok = m.Row(d+2, d)
		assert.False(t, ok)
	}
}

func TestMatrixElementsColumn(t *testing.T) {
	for d := uint(0); d <= 5; d++ {
		side := int(d) + 1
		values := seq(0, side*side)
		m := NewMatrixElements(values)
		for c := uint(1); c <= d+1; c++ {
			got, ok := m.Column(c, d)
			require.True(t, ok, "degree %d column %d", d, c)
			want := make([]float64, 0, side)
			for off := int(c) - 1; off < len(values); off += side {
				want = append(want, values[off])
			}
			assert.Len(t, got, side)
			diff(t, want, got)
		}
		_, ok := m.Column(0, d)
		assert.False(t, ok)
		_, ok = m.Column(d+2, d)
		assert.False(t, ok)
	}
}

func TestMatrixElementsExtractionNeedsMatchingDegree(t *testing.T) {
	m := NewMatrixElements(seq(1, 9))

	row, ok := m.Row(2, 2)
	require.True(t, ok)
	diff(t, []float64{4, 5, 6}, row)
	col, ok := m.Column(3, 2)
	require.True(t, ok)
	diff(t, []float64{3, 6, 9}, col)

	_, ok = m.Row(1, 3)
	assert.False(t, ok)
	_, ok = m.Column(1, 1)
	assert.False(t, ok)
}

func TestMatrixElementsRowIsACopy(t *testing.T) {
	m := NewMatrixElements(seq(1, 4))
	row, ok := m.Row(1, 1)
	require.True(t, ok)
	row[0] = 99
	diff(t, []float64{1, 2, 3, 4}, m.Values())
}

func TestBasisMatrixValidateSize(t *testing.T) {
	for d := uint(0); d <= 6; d++ {
		n := int((d + 1) * (d + 1))
		degree := NewCurve(d)
		assert.NoError(t, NewCurveMatrix(seq(0, n)).Validate(degree), "degree %d", d)
		assert.ErrorIs(t, NewCurveMatrix(seq(0, n+1)).Validate(degree), ErrMatrixSizeMismatch)
		assert.ErrorIs(t, NewCurveMatrix(seq(0, n-1)).Validate(degree), ErrMatrixSizeMismatch)
	}
}

func TestBasisMatrixValidate(t *testing.T) {
	tests := []struct {
		name    string
		matrix  BasisMatrix
		degree  Degree
		wantErr error
	}{
		{name: "curve", matrix: NewCurveMatrix(seq(0, 16)), degree: NewCurve[uint](3)},
		{name: "surface", matrix: NewSurfaceMatrix(seq(0, 16), seq(0, 9)), degree: NewSurface[uint](3, 2)},
		{name: "curve matrix surface degree", matrix: NewCurveMatrix(seq(0, 16)), degree: NewSurface[uint](3, 3), wantErr: ErrInvalidDegree},
		{name: "surface matrix curve degree", matrix: NewSurfaceMatrix(seq(0, 16), seq(0, 16)), degree: NewCurve[uint](3), wantErr: ErrInvalidDegree},
		{name: "surface u wrong", matrix: NewSurfaceMatrix(seq(0, 15), seq(0, 16)), degree: NewSurface[uint](3, 3), wantErr: ErrMatrixSizeMismatch},
		{name: "surface v wrong", matrix: NewSurfaceMatrix(seq(0, 16), seq(0, 16)), degree: NewSurface[uint](3, 2), wantErr: ErrMatrixSizeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.matrix.Validate(tt.degree)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBasisMatrixRowColumn(t *testing.T) {
	surface := NewSurfaceMatrix(seq(1, 4), seq(11, 9))
	degree := NewSurface[uint](1, 2)

	rows, ok := surface.Row(2, degree)
	require.True(t, ok)
	diff(t, [][]float64{{3, 4}, {14, 15, 16}}, rows)

	cols, ok := surface.Column(1, degree)
	require.True(t, ok)
	diff(t, [][]float64{{1, 3}, {11, 14, 17}}, cols)

	// Row 3 exists on V but not on U.
	_, ok = surface.Row(3, degree)
	assert.False(t, ok)

	_, ok = surface.Row(1, NewCurve[uint](1))
	assert.False(t, ok)

	curve := NewCurveMatrix(seq(1, 4))
	rows, ok = curve.Row(1, NewCurve[uint](1))
	require.True(t, ok)
	diff(t, [][]float64{{1, 2}}, rows)
}

func TestAttributesSetters(t *testing.T) {
	base := DefaultBasisMatrixAttributes()
	assert.True(t, base.Matrix().IsCurve())
	assert.Equal(t, 0, base.Matrix().U().Len())
	assert.Equal(t, NewCurve[uint](0), base.Step())

	curve := base.WithMatrixU(seq(1, 4))
	assert.True(t, curve.Matrix().IsCurve())
	assert.Equal(t, 0, base.Matrix().U().Len(), "setter must not touch the receiver")

	surface := curve.WithMatrixV(seq(5, 4))
	require.True(t, surface.Matrix().IsSurface())
	diff(t, curve.Matrix().U().Values(), surface.Matrix().U().Values())
	assert.True(t, curve.Matrix().IsCurve())

	replaced := surface.WithMatrixU(seq(9, 4))
	require.True(t, replaced.Matrix().IsSurface())
	v, _ := replaced.Matrix().V()
	before, _ := surface.Matrix().V()
	diff(t, before.Values(), v.Values())
	diff(t, seq(9, 4), replaced.Matrix().U().Values())

	stepped, err := base.WithStep([]uint{3, 3})
	require.NoError(t, err)
	assert.Equal(t, NewSurface[uint](3, 3), stepped.Step())

	_, err = base.WithStep(nil)
	assert.ErrorIs(t, err, ErrInvalidBufferSize)
	_, err = base.WithStep([]uint{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidBufferSize)
}

func TestAttributesValidate(t *testing.T) {
	curveStep := NewCurve[uint](1)
	surfaceStep := NewSurface[uint](1, 1)

	tests := []struct {
		name    string
		attrs   BasisMatrixAttributes
		degree  Degree
		wantErr []error
	}{
		{
			name:   "curve",
			attrs:  NewBasisMatrixAttributes(curveStep, NewCurveMatrix(seq(0, 4))),
			degree: NewCurve[uint](1),
		},
		{
			name:   "surface",
			attrs:  NewBasisMatrixAttributes(surfaceStep, NewSurfaceMatrix(seq(0, 4), seq(0, 4))),
			degree: NewSurface[uint](1, 1),
		},
		{
			name:    "size",
			attrs:   NewBasisMatrixAttributes(curveStep, NewCurveMatrix(seq(0, 5))),
			degree:  NewCurve[uint](1),
			wantErr: []error{ErrMatrixSizeMismatch},
		},
		{
			name:    "matrix and degree arity",
			attrs:   NewBasisMatrixAttributes(surfaceStep, NewSurfaceMatrix(seq(0, 4), seq(0, 4))),
			degree:  NewCurve[uint](1),
			wantErr: []error{ErrCurveSurfaceMismatch, ErrInvalidDegree},
		},
		{
			name:    "step and matrix arity",
			attrs:   NewBasisMatrixAttributes(curveStep, NewSurfaceMatrix(seq(0, 4), seq(0, 4))),
			degree:  NewSurface[uint](1, 1),
			wantErr: []error{ErrFreeFormTypeMismatch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.attrs.Validate(tt.degree)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
