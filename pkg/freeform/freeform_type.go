package freeform

import (
	"fmt"

	"github.com/mesh-intelligence/freeform/pkg/keywords"
)

// Kind is a free-form basis kind selected by cstype.
type Kind int

const (
	KindBezier Kind = iota
	KindBasisMatrix
	KindBSpline
	KindCardinal
	KindTaylor
)

var kindTokens = map[Kind]string{
	KindBezier:      keywords.CurveTypeBezier,
	KindBasisMatrix: keywords.CurveTypeBasisMatrix,
	KindBSpline:     keywords.CurveTypeBSpline,
	KindCardinal:    keywords.CurveTypeCardinal,
	KindTaylor:      keywords.CurveTypeTaylor,
}

var tokenKinds = map[string]Kind{
	keywords.CurveTypeBezier:      KindBezier,
	keywords.CurveTypeBasisMatrix: KindBasisMatrix,
	keywords.CurveTypeBSpline:     KindBSpline,
	keywords.CurveTypeCardinal:    KindCardinal,
	keywords.CurveTypeTaylor:      KindTaylor,
}

// String returns the cstype token for the kind.
func (k Kind) String() string {
	if tok, ok := kindTokens[k]; ok {
		return tok
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a cstype token to a Kind.
func ParseKind(token string) (Kind, error) {
	k, ok := tokenKinds[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFreeFormType, token)
	}
	return k, nil
}

// FreeFormType is the basis kind of a definition. Only KindBasisMatrix
// carries data. The zero value is a bezier type.
type FreeFormType struct {
	kind  Kind
	attrs BasisMatrixAttributes
}

// NewFreeFormType returns the type for kind. A basis matrix type starts from
// DefaultBasisMatrixAttributes.
func NewFreeFormType(kind Kind) FreeFormType {
	t := FreeFormType{kind: kind}
	if kind == KindBasisMatrix {
		t.attrs = DefaultBasisMatrixAttributes()
	}
	return t
}

// BasisMatrixType returns a basis matrix type carrying attrs.
func BasisMatrixType(attrs BasisMatrixAttributes) FreeFormType {
	return FreeFormType{kind: KindBasisMatrix, attrs: attrs}
}

// ParseFreeFormType maps one of the cstype tokens bmatrix, bezier, bspline,
// cardinal or taylor to its type. Other tokens return ErrInvalidFreeFormType.
func ParseFreeFormType(token string) (FreeFormType, error) {
	k, err := ParseKind(token)
	if err != nil {
		return FreeFormType{}, err
	}
	return NewFreeFormType(k), nil
}

func (t FreeFormType) Kind() Kind { return t.kind }

// Attributes returns the basis matrix attributes; ok is false for every other
// kind.
func (t FreeFormType) Attributes() (attrs BasisMatrixAttributes, ok bool) {
	if t.kind != KindBasisMatrix {
		return BasisMatrixAttributes{}, false
	}
	return t.attrs, true
}

// WithAttributes returns a copy carrying attrs. Returns ErrInvalidFormType if
// the type is not a basis matrix; types are never promoted.
func (t FreeFormType) WithAttributes(attrs BasisMatrixAttributes) (FreeFormType, error) {
	if t.kind != KindBasisMatrix {
		return t, fmt.Errorf("%w: %s has no basis matrix", ErrInvalidFormType, t.kind)
	}
	t.attrs = attrs
	return t, nil
}

func (t FreeFormType) String() string { return t.kind.String() }
