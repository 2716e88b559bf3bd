package obj

import (
	"fmt"
	"strconv"
)

// Vertex is a geometric vertex (v x y z [w]). W defaults to 1.
type Vertex struct {
	X, Y, Z, W float64
}

// TextureCoordinate is a texture vertex (vt u [v] [w]). V and W default to 0.
type TextureCoordinate struct {
	U, V, W float64
}

// VertexNormal is a vertex normal (vn i j k).
type VertexNormal struct {
	I, J, K float64
}

// ParameterSpaceVertex is a free-form control point in parameter space
// (vp u [v] [w]). W defaults to 1; it is only meaningful for rational
// trimming curves.
type ParameterSpaceVertex struct {
	U, V, W float64
}

// ParseVertex builds a Vertex from 3 or 4 numeric tokens.
func ParseVertex(tokens []string) (Vertex, error) {
	vals, err := parseFloats(tokens, 3, 4, 1)
	if err != nil {
		return Vertex{}, fmt.Errorf("v: %w", err)
	}
	return Vertex{X: vals[0], Y: vals[1], Z: vals[2], W: vals[3]}, nil
}

// ParseTextureCoordinate builds a TextureCoordinate from 1 to 3 numeric tokens.
func ParseTextureCoordinate(tokens []string) (TextureCoordinate, error) {
	vals, err := parseFloats(tokens, 1, 3, 0)
	if err != nil {
		return TextureCoordinate{}, fmt.Errorf("vt: %w", err)
	}
	return TextureCoordinate{U: vals[0], V: vals[1], W: vals[2]}, nil
}

// ParseVertexNormal builds a VertexNormal from exactly 3 numeric tokens.
func ParseVertexNormal(tokens []string) (VertexNormal, error) {
	vals, err := parseFloats(tokens, 3, 3, 0)
	if err != nil {
		return VertexNormal{}, fmt.Errorf("vn: %w", err)
	}
	return VertexNormal{I: vals[0], J: vals[1], K: vals[2]}, nil
}

// ParseParameterSpaceVertex builds a ParameterSpaceVertex from 1 to 3 tokens.
func ParseParameterSpaceVertex(tokens []string) (ParameterSpaceVertex, error) {
	vals, err := parseFloats(tokens, 1, 3, 0)
	if err != nil {
		return ParameterSpaceVertex{}, fmt.Errorf("vp: %w", err)
	}
	if len(tokens) < 3 {
		vals[2] = 1
	}
	return ParameterSpaceVertex{U: vals[0], V: vals[1], W: vals[2]}, nil
}

// parseFloats converts between lo and hi tokens, padding the result to hi
// entries. Only the final padded entry takes def; earlier padding is zero.
func parseFloats(tokens []string, lo, hi int, def float64) ([]float64, error) {
	if len(tokens) < lo || len(tokens) > hi {
		return nil, fmt.Errorf("%w: want %d to %d values, got %d", ErrInvalidVertexData, lo, hi, len(tokens))
	}
	vals := make([]float64, hi)
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVertexData, tok)
		}
		vals[i] = f
	}
	if len(tokens) < hi {
		vals[hi-1] = def
	}
	return vals, nil
}
