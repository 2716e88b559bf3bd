package obj

import (
	"github.com/mesh-intelligence/freeform/pkg/keywords"
)

// VertexBuffer accumulates vertex data in file order so that elements can
// refer to it by Index. The zero value is ready to use.
type VertexBuffer struct {
	vertices   []Vertex
	texCoords  []TextureCoordinate
	normals    []VertexNormal
	paramVerts []ParameterSpaceVertex
}

// NewVertexBuffer returns an empty buffer.
func NewVertexBuffer() *VertexBuffer {
	return &VertexBuffer{}
}

func (b *VertexBuffer) AddVertex(v Vertex) { b.vertices = append(b.vertices, v) }

func (b *VertexBuffer) AddTextureCoordinate(vt TextureCoordinate) {
	b.texCoords = append(b.texCoords, vt)
}

func (b *VertexBuffer) AddNormal(vn VertexNormal) { b.normals = append(b.normals, vn) }

func (b *VertexBuffer) AddParameterSpaceVertex(vp ParameterSpaceVertex) {
	b.paramVerts = append(b.paramVerts, vp)
}

// AddLine records the vertex statement carried by line. It reports false,
// with a nil error, when the line is not a vertex statement.
func (b *VertexBuffer) AddLine(line Line) (bool, error) {
	switch line.Keyword {
	case keywords.Vertex:
		v, err := ParseVertex(line.Params)
		if err != nil {
			return true, err
		}
		b.AddVertex(v)
	case keywords.TextureCoordinate:
		vt, err := ParseTextureCoordinate(line.Params)
		if err != nil {
			return true, err
		}
		b.AddTextureCoordinate(vt)
	case keywords.VertexNormal:
		vn, err := ParseVertexNormal(line.Params)
		if err != nil {
			return true, err
		}
		b.AddNormal(vn)
	case keywords.ParameterSpaceVertex:
		vp, err := ParseParameterSpaceVertex(line.Params)
		if err != nil {
			return true, err
		}
		b.AddParameterSpaceVertex(vp)
	default:
		return false, nil
	}
	return true, nil
}

// Vertex returns the geometric vertex at i.
func (b *VertexBuffer) Vertex(i Index) (Vertex, error) { return at(b.vertices, i) }

// TextureCoordinate returns the texture vertex at i.
func (b *VertexBuffer) TextureCoordinate(i Index) (TextureCoordinate, error) {
	return at(b.texCoords, i)
}

// Normal returns the vertex normal at i.
func (b *VertexBuffer) Normal(i Index) (VertexNormal, error) { return at(b.normals, i) }

// ParameterSpaceVertex returns the parameter space vertex at i.
func (b *VertexBuffer) ParameterSpaceVertex(i Index) (ParameterSpaceVertex, error) {
	return at(b.paramVerts, i)
}

// Counts returns the number of v, vt, vn and vp records held.
func (b *VertexBuffer) Counts() (v, vt, vn, vp int) {
	return len(b.vertices), len(b.texCoords), len(b.normals), len(b.paramVerts)
}

func at[T any](items []T, i Index) (T, error) {
	off, err := i.Resolve(len(items))
	if err != nil {
		var zero T
		return zero, err
	}
	return items[off], nil
}
