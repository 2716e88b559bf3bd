package freeform

import (
	"fmt"
	"math"
	"strconv"
)

// Number is the set of component types a UVPair can hold: unsigned integers
// for degree and step, floats for parameter lists.
type Number interface {
	uint | float64
}

// UVPair holds one component for a curve or two (u, v) for a surface. Its
// arity is fixed at construction. The zero value is the curve (0).
type UVPair[T Number] struct {
	u, v    T
	surface bool
}

// Degree is the polynomial degree per axis.
type Degree = UVPair[uint]

// Step is the basis matrix step size per axis.
type Step = UVPair[uint]

// NewCurve returns a one-component pair.
func NewCurve[T Number](u T) UVPair[T] {
	return UVPair[T]{u: u}
}

// NewSurface returns a two-component pair.
func NewSurface[T Number](u, v T) UVPair[T] {
	return UVPair[T]{u: u, v: v, surface: true}
}

// ParseUVPair converts 1 or 2 numeric tokens into a pair.
// Returns ErrInvalidParameters if a token does not parse as T and
// ErrInvalidBufferSize for any other token count.
func ParseUVPair[T Number](tokens []string) (UVPair[T], error) {
	vals := make([]T, 0, len(tokens))
	for _, tok := range tokens {
		n, err := parseNumber[T](tok)
		if err != nil {
			return UVPair[T]{}, err
		}
		vals = append(vals, n)
	}
	return uvPairOf(vals)
}

// ParseDegree parses the parameters of a deg statement.
func ParseDegree(tokens []string) (Degree, error) {
	return ParseUVPair[uint](tokens)
}

// ParseStep parses the parameters of a step statement.
func ParseStep(tokens []string) (Step, error) {
	return ParseUVPair[uint](tokens)
}

func uvPairOf[T Number](vals []T) (UVPair[T], error) {
	switch len(vals) {
	case 1:
		return NewCurve(vals[0]), nil
	case 2:
		return NewSurface(vals[0], vals[1]), nil
	default:
		return UVPair[T]{}, fmt.Errorf("%w: want 1 or 2, got %d", ErrInvalidBufferSize, len(vals))
	}
}

// U returns the first component. It is always present.
func (p UVPair[T]) U() T { return p.u }

// V returns the second component; ok is false for curves.
func (p UVPair[T]) V() (v T, ok bool) {
	return p.v, p.surface
}

func (p UVPair[T]) IsCurve() bool   { return !p.surface }
func (p UVPair[T]) IsSurface() bool { return p.surface }

// Components returns the components in u, v order.
func (p UVPair[T]) Components() []T {
	if p.surface {
		return []T{p.u, p.v}
	}
	return []T{p.u}
}

// All reports whether every component satisfies fn.
func (p UVPair[T]) All(fn func(T) bool) bool {
	if !fn(p.u) {
		return false
	}
	return !p.surface || fn(p.v)
}

func (p UVPair[T]) String() string {
	if p.surface {
		return fmt.Sprintf("%v %v", p.u, p.v)
	}
	return fmt.Sprintf("%v", p.u)
}

// arity names the pair shape for error messages.
func (p UVPair[T]) arity() string {
	return arityName(p.surface)
}

func arityName(surface bool) string {
	if surface {
		return "surface"
	}
	return "curve"
}

func parseNumber[T Number](tok string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case uint:
		n, err := strconv.ParseUint(tok, 10, strconv.IntSize)
		if err != nil {
			return zero, fmt.Errorf("%w: %q is not an unsigned integer", ErrInvalidParameters, tok)
		}
		return T(n), nil
	default:
		f, err := parseFloat(tok)
		if err != nil {
			return zero, err
		}
		return T(f), nil
	}
}

// parseFloat accepts finite decimal values only.
func parseFloat(tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidParameters, tok)
	}
	return f, nil
}

func parseFloats(tokens []string) ([]float64, error) {
	vals := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		f, err := parseFloat(tok)
		if err != nil {
			return nil, err
		}
		vals = append(vals, f)
	}
	return vals, nil
}

func parseUints(tokens []string) ([]uint, error) {
	vals := make([]uint, 0, len(tokens))
	for _, tok := range tokens {
		n, err := parseNumber[uint](tok)
		if err != nil {
			return nil, err
		}
		vals = append(vals, n)
	}
	return vals, nil
}
