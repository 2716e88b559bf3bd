package scan

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/freeform/internal/ctxlog"
	"github.com/mesh-intelligence/freeform/pkg/freeform"
	"github.com/mesh-intelligence/freeform/pkg/keywords"
	"github.com/mesh-intelligence/freeform/pkg/obj"
)

const twoCurves = `# two curves sharing a type
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
cstype bezier
deg 3
curv 0 1 1 2 3 4
parm u 0 1
end

deg 2
curv 0 1 1 2 3
end
`

func scanString(t *testing.T, src string, opts Options) *Document {
	t.Helper()
	doc, err := Scan(context.Background(), strings.NewReader(src), "test.obj", opts)
	require.NoError(t, err)
	return doc
}

func TestScanCarriesAttributeState(t *testing.T) {
	doc := scanString(t, twoCurves, Options{})

	v, _, _, _ := doc.Vertices.Counts()
	assert.Equal(t, 4, v)
	require.Len(t, doc.Definitions, 2)
	assert.Empty(t, doc.Diagnostics)
	assert.True(t, doc.Valid())

	first := doc.Definitions[0]
	assert.Equal(t, 6, first.Line)
	assert.Equal(t, freeform.KindBezier, first.Definition.Type.Kind())
	assert.Equal(t, freeform.NewCurve[uint](3), first.Definition.Degree)

	second := doc.Definitions[1]
	assert.Equal(t, 12, second.Line)
	assert.Equal(t, freeform.KindBezier, second.Definition.Type.Kind())
	assert.Equal(t, freeform.NewCurve[uint](2), second.Definition.Degree)
}

func TestScanInvalidDefinition(t *testing.T) {
	src := "cstype cardinal\ndeg 2\ncurv 0 1 1 2 3\n"
	doc := scanString(t, src, Options{})

	require.Len(t, doc.Definitions, 1)
	located := doc.Definitions[0]
	assert.False(t, located.Valid())
	require.NotNil(t, located.Err)
	assert.Equal(t, 1, located.Err.Line)
	assert.ErrorIs(t, located.Err, freeform.ErrCardinalDegreeNotEqualToThree)
	assert.Equal(t, "test.obj:1: ", located.Err.Error()[:len("test.obj:1: ")])
	assert.False(t, doc.Valid())
}

func TestScanParseErrorPosition(t *testing.T) {
	src := strings.Join([]string{
		"cstype bmatrix",
		"deg 1",
		"bmat w 1 2 3 4",
		"curv 0 1 1 2",
		"cstype bezier",
		"deg 3",
	}, "\n")
	doc := scanString(t, src, Options{})

	require.Len(t, doc.Diagnostics, 1)
	diag := doc.Diagnostics[0]
	assert.Equal(t, slog.LevelError, diag.Level)
	assert.Equal(t, 3, diag.Err.Line)
	assert.ErrorIs(t, diag.Err, freeform.ErrInvalidKeyword)
	assert.False(t, doc.Valid())

	// Scanning resumes after the failing statement.
	require.Len(t, doc.Definitions, 1)
	assert.Equal(t, 5, doc.Definitions[0].Line)
}

func TestScanParseErrorDropsRun(t *testing.T) {
	src := strings.Join([]string{
		"cstype bmatrix",
		"bmat w 1",
		"deg 3",
		"step 1",
		"curv 0 1 1 2 3 4",
		"cstype bezier",
		"deg 3",
	}, "\n")
	doc := scanString(t, src, Options{})

	require.Len(t, doc.Diagnostics, 1, "statements after the failure are not reported again")
	assert.Equal(t, 2, doc.Diagnostics[0].Err.Line)
	assert.ErrorIs(t, doc.Diagnostics[0].Err, freeform.ErrInvalidKeyword)

	require.Len(t, doc.Definitions, 1)
	assert.Equal(t, 6, doc.Definitions[0].Line)
	assert.True(t, doc.Definitions[0].Valid())
}

func TestScanCustomLookup(t *testing.T) {
	// ctech counts as a free-form attribute that Parse does not handle.
	lookup := func(word string) (keywords.Class, bool) {
		if word == keywords.CurveApproximation {
			return keywords.ClassFreeFormAttribute, true
		}
		return keywords.Lookup(word)
	}

	tests := []struct {
		name     string
		src      string
		defLines []int
		diagLine int
		diagErr  error
	}{
		{
			name:     "after a definition",
			src:      "cstype bezier\ndeg 3\nctech cparm 1.0\ncurv 0 1 1 2 3 4\n",
			defLines: []int{1},
			diagLine: 3,
			diagErr:  ErrUnknownKeyword,
		},
		{
			name:     "before any definition",
			src:      "ctech cparm 1.0\ncstype bezier\ndeg 3\n",
			defLines: []int{2},
			diagLine: 1,
			diagErr:  freeform.ErrMalformedDefinition,
		},
		{
			name:     "carried state",
			src:      "cstype bezier\ndeg 3\nend\nctech cparm 1.0\ndeg 2\n",
			defLines: []int{1, 5},
			diagLine: 4,
			diagErr:  ErrUnknownKeyword,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			doc, err := Scan(ctx, strings.NewReader(tt.src), "test.obj", Options{Lookup: lookup})
			require.NoError(t, err)

			var lines []int
			for _, l := range doc.Definitions {
				lines = append(lines, l.Line)
			}
			assert.Equal(t, tt.defLines, lines)
			require.Len(t, doc.Diagnostics, 1)
			assert.Equal(t, tt.diagLine, doc.Diagnostics[0].Err.Line)
			assert.ErrorIs(t, doc.Diagnostics[0].Err, tt.diagErr)
		})
	}
}

func TestScanMalformedDefinition(t *testing.T) {
	doc := scanString(t, "deg 3\ncurv 0 1 1 2 3 4\n", Options{})

	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, 1, doc.Diagnostics[0].Err.Line)
	assert.ErrorIs(t, doc.Diagnostics[0].Err, freeform.ErrMalformedDefinition)
	assert.Empty(t, doc.Definitions)
}

func TestScanFailFast(t *testing.T) {
	src := "cstype cardinal\ndeg 2\ncurv 0 1 1 2 3\ncstype bezier\ndeg 3\n"
	doc, err := Scan(context.Background(), strings.NewReader(src), "test.obj", Options{FailFast: true})

	var perr *PositionError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Line)
	assert.ErrorIs(t, err, freeform.ErrCardinalDegreeNotEqualToThree)
	require.NotNil(t, doc)
	assert.Len(t, doc.Definitions, 1)
}

func TestScanVAxisPolicy(t *testing.T) {
	src := "cstype bmatrix\ndeg 1\nstep 1\nbmat u 1 0 0 1\nbmat v 1 0 0 1\n"

	doc := scanString(t, src, Options{})
	require.Len(t, doc.Definitions, 1)
	assert.ErrorIs(t, doc.Definitions[0].Err, freeform.ErrCurveSurfaceMismatch)

	doc = scanString(t, src, Options{VAxisPolicy: freeform.VAxisReject})
	assert.Empty(t, doc.Definitions)
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, 5, doc.Diagnostics[0].Err.Line)
}

func TestScanStrictKeywords(t *testing.T) {
	src := "frobnicate 1 2\nv 1 2 3\nv x\n"

	doc := scanString(t, src, Options{})
	require.Len(t, doc.Diagnostics, 1, "bad vertex data is always reported")
	assert.ErrorIs(t, doc.Diagnostics[0].Err, obj.ErrInvalidVertexData)

	doc = scanString(t, src, Options{StrictKeywords: true})
	require.Len(t, doc.Diagnostics, 2)
	assert.ErrorIs(t, doc.Diagnostics[0].Err, ErrUnknownKeyword)
	assert.Equal(t, 1, doc.Diagnostics[0].Err.Line)
	assert.Equal(t, slog.LevelWarn, doc.Diagnostics[0].Level)
	assert.True(t, doc.Valid(), "warnings do not invalidate the document")
}

func TestDocumentDefinition(t *testing.T) {
	doc := scanString(t, twoCurves, Options{})

	got, err := doc.Definition(1)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Line)

	got, err = doc.Definition(-1)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Line)

	_, err = doc.Definition(3)
	assert.ErrorIs(t, err, obj.ErrOutOfBounds)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, strings.NewReader(twoCurves), "test.obj", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanLogsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	_, err := Scan(ctx, strings.NewReader(twoCurves), "curves.obj", Options{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "file=curves.obj")
	assert.Contains(t, buf.String(), "msg=definition")
}
