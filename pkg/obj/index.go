package obj

import (
	"errors"
	"fmt"
	"strconv"
)

// Index and buffer errors.
var (
	ErrIndexIsZero       = errors.New("obj: index must not be zero")
	ErrInvalidIndex      = errors.New("obj: invalid index")
	ErrOutOfBounds       = errors.New("obj: index out of bounds")
	ErrInvalidVertexData = errors.New("obj: invalid vertex data")
)

// Index is an OBJ element reference. Positive values are absolute and
// 1-based; negative values count back from the end of the buffer, so -1 is
// the most recently added element. Zero is never a valid Index.
type Index int

// NewIndex validates v as an OBJ index.
func NewIndex(v int) (Index, error) {
	if v == 0 {
		return 0, ErrIndexIsZero
	}
	return Index(v), nil
}

// ParseIndex parses a decimal OBJ index token.
func ParseIndex(s string) (Index, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
	}
	return NewIndex(v)
}

// IsRelative reports whether the index counts back from the end.
func (i Index) IsRelative() bool {
	return i < 0
}

// Resolve converts the index into a 0-based offset into a buffer holding n
// elements. Returns ErrOutOfBounds when the element does not exist.
func (i Index) Resolve(n int) (int, error) {
	var off int
	switch {
	case i == 0:
		return 0, ErrIndexIsZero
	case i > 0:
		off = int(i) - 1
	default:
		off = n + int(i)
	}
	if off < 0 || off >= n {
		return 0, fmt.Errorf("%w: %d of %d", ErrOutOfBounds, int(i), n)
	}
	return off, nil
}
