package freeform

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mesh-intelligence/freeform/pkg/obj"
)

func diff(t *testing.T, want, got any) {
	t.Helper()
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

// source returns a reader over the given statements, one per line.
func source(stmts ...string) *obj.Reader {
	return obj.NewReader(strings.NewReader(strings.Join(stmts, "\n")))
}

// seq returns n coefficients counting up from start.
func seq(start float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

// bmat renders a bmat statement for axis with the given coefficients.
func bmat(axis string, values []float64) string {
	return bmatStatement(axis, NewMatrixElements(values))
}
