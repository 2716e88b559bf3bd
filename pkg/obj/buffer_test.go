package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex(t *testing.T) {
	_, err := NewIndex(0)
	assert.ErrorIs(t, err, ErrIndexIsZero)

	i, err := NewIndex(-2)
	require.NoError(t, err)
	assert.True(t, i.IsRelative())

	_, err = ParseIndex("x")
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = ParseIndex("0")
	assert.ErrorIs(t, err, ErrIndexIsZero)
}

func TestIndexResolve(t *testing.T) {
	tests := []struct {
		name    string
		index   Index
		n       int
		want    int
		wantErr error
	}{
		{name: "first absolute", index: 1, n: 3, want: 0},
		{name: "last absolute", index: 3, n: 3, want: 2},
		{name: "past end", index: 4, n: 3, wantErr: ErrOutOfBounds},
		{name: "last relative", index: -1, n: 3, want: 2},
		{name: "first relative", index: -3, n: 3, want: 0},
		{name: "before start", index: -4, n: 3, wantErr: ErrOutOfBounds},
		{name: "empty buffer", index: 1, n: 0, wantErr: ErrOutOfBounds},
		{name: "zero", index: 0, n: 3, wantErr: ErrIndexIsZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.index.Resolve(tt.n)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVertexRecords(t *testing.T) {
	v, err := ParseVertex([]string{"1", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, Vertex{X: 1, Y: 2, Z: 3, W: 1}, v)

	v, err = ParseVertex([]string{"1", "2", "3", "0.5"})
	require.NoError(t, err)
	assert.Equal(t, 0.5, v.W)

	_, err = ParseVertex([]string{"1", "2"})
	assert.ErrorIs(t, err, ErrInvalidVertexData)
	_, err = ParseVertex([]string{"1", "2", "z"})
	assert.ErrorIs(t, err, ErrInvalidVertexData)

	vt, err := ParseTextureCoordinate([]string{"0.25"})
	require.NoError(t, err)
	assert.Equal(t, TextureCoordinate{U: 0.25}, vt)

	vn, err := ParseVertexNormal([]string{"0", "0", "1"})
	require.NoError(t, err)
	assert.Equal(t, VertexNormal{K: 1}, vn)
	_, err = ParseVertexNormal([]string{"0", "0", "1", "1"})
	assert.ErrorIs(t, err, ErrInvalidVertexData)

	vp, err := ParseParameterSpaceVertex([]string{"0.5", "0.75"})
	require.NoError(t, err)
	assert.Equal(t, ParameterSpaceVertex{U: 0.5, V: 0.75, W: 1}, vp)
}

func TestVertexBufferAddLine(t *testing.T) {
	b := NewVertexBuffer()

	for _, text := range []string{"v 0 0 0", "v 1 1 1", "vt 0.5 0.5", "vn 0 1 0", "vp 0.1"} {
		handled, err := b.AddLine(ParseLine(text))
		require.NoError(t, err, text)
		assert.True(t, handled, text)
	}

	handled, err := b.AddLine(ParseLine("f 1 2 3"))
	assert.NoError(t, err)
	assert.False(t, handled)

	handled, err = b.AddLine(ParseLine("v 1"))
	assert.True(t, handled)
	assert.ErrorIs(t, err, ErrInvalidVertexData)

	v, vt, vn, vp := b.Counts()
	assert.Equal(t, []int{2, 1, 1, 1}, []int{v, vt, vn, vp})

	last, err := b.Vertex(-1)
	require.NoError(t, err)
	first, err := b.Vertex(2)
	require.NoError(t, err)
	assert.Equal(t, last, first)

	_, err = b.Normal(2)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	tc, err := b.TextureCoordinate(1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, tc.V)

	pv, err := b.ParameterSpaceVertex(-1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, pv.W)
}
