// Package scan walks a whole OBJ document. It collects vertex data into a
// buffer and hands every run of free-form attribute statements to
// freeform.Parse, validating each resulting definition. Statements of other
// kinds are skipped.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mesh-intelligence/freeform/internal/ctxlog"
	"github.com/mesh-intelligence/freeform/pkg/freeform"
	"github.com/mesh-intelligence/freeform/pkg/keywords"
	"github.com/mesh-intelligence/freeform/pkg/obj"
)

// ErrUnknownKeyword is reported, under strict keywords, for statements the
// keyword catalogue does not know.
var ErrUnknownKeyword = errors.New("unknown keyword")

// Options controls a scan. The zero value upgrades "bmat v" on curves,
// ignores unknown keywords and scans the whole document.
type Options struct {
	VAxisPolicy    freeform.VAxisPolicy
	StrictKeywords bool
	FailFast       bool

	// Lookup classifies statement keywords. Defaults to keywords.Lookup.
	Lookup func(word string) (keywords.Class, bool)
}

// PositionError attaches a file position to an error. It unwraps to the
// underlying cause, so errors.Is matches freeform sentinels through it.
type PositionError struct {
	File string
	Line int
	Err  error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *PositionError) Unwrap() error { return e.Err }

// Located is a parsed definition and where it starts. Err holds the
// validation failure, nil when the definition is valid.
type Located struct {
	Definition freeform.Definition
	Line       int
	Err        *PositionError
}

// Valid reports whether the definition passed validation.
func (l Located) Valid() bool { return l.Err == nil }

// Diagnostic is a problem found outside validation: a statement that failed
// to parse or, under strict keywords, an unknown statement.
type Diagnostic struct {
	Level slog.Level
	Err   *PositionError
}

func (d Diagnostic) String() string {
	return d.Level.String() + " " + d.Err.Error()
}

// Document is the result of a scan.
type Document struct {
	Name        string
	Vertices    *obj.VertexBuffer
	Definitions []Located
	Diagnostics []Diagnostic
}

// Valid reports whether every definition validated and no statement failed
// to parse.
func (d *Document) Valid() bool {
	for _, l := range d.Definitions {
		if !l.Valid() {
			return false
		}
	}
	for _, diag := range d.Diagnostics {
		if diag.Level >= slog.LevelError {
			return false
		}
	}
	return true
}

// Definition returns the definition at a 1-based index. Negative indices
// count from the end, as OBJ vertex references do.
func (d *Document) Definition(i obj.Index) (Located, error) {
	n, err := i.Resolve(len(d.Definitions))
	if err != nil {
		return Located{}, fmt.Errorf("definition %d: %w", i, err)
	}
	return d.Definitions[n], nil
}

// Scan reads an OBJ document from r. Name is used in positions.
//
// Scan returns an error for read failures and cancellation. Parse and
// validation failures are recorded in the Document; with FailFast the scan
// stops at the first one and also returns it.
func Scan(ctx context.Context, r io.Reader, name string, opts Options) (*Document, error) {
	s := &scanner{
		ctx:    ctx,
		rd:     obj.NewReader(r),
		opts:   opts,
		lookup: opts.Lookup,
		log:    ctxlog.FromContext(ctx).With("file", name),
		doc:    &Document{Name: name, Vertices: obj.NewVertexBuffer()},
	}
	if s.lookup == nil {
		s.lookup = keywords.Lookup
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, ok := s.rd.Peek()
		if !ok {
			break
		}
		if err := s.statement(line); err != nil {
			return s.doc, err
		}
	}
	if err := s.rd.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	v, vt, vn, vp := s.doc.Vertices.Counts()
	s.log.Debug("scan complete",
		"definitions", len(s.doc.Definitions), "diagnostics", len(s.doc.Diagnostics),
		"v", v, "vt", vt, "vn", vn, "vp", vp)
	return s.doc, nil
}

type scanner struct {
	ctx     context.Context
	rd      *obj.Reader
	opts    Options
	lookup  func(string) (keywords.Class, bool)
	log     *slog.Logger
	doc     *Document
	current *freeform.Definition // attribute state carried between definitions
}

// statement handles the line at the head of the reader. It returns an error
// only when the scan must stop.
func (s *scanner) statement(line obj.Line) error {
	if !line.HasKeyword() {
		s.rd.Skip()
		return nil
	}
	class, known := s.lookup(line.Keyword)
	switch {
	case class == keywords.ClassFreeFormAttribute:
		return s.definition(line.Number)
	case class == keywords.ClassVertexData:
		s.rd.Skip()
		if _, err := s.doc.Vertices.AddLine(line); err != nil {
			s.diagnose(slog.LevelWarn, line.Number, err)
		}
	case !known:
		s.rd.Skip()
		if s.opts.StrictKeywords {
			s.diagnose(slog.LevelWarn, line.Number, fmt.Errorf("%w: %q", ErrUnknownKeyword, line.Keyword))
		}
	default:
		s.rd.Skip()
	}
	return nil
}

func (s *scanner) definition(start int) error {
	popts := []freeform.ParseOption{
		freeform.WithVAxisPolicy(s.opts.VAxisPolicy),
		freeform.WithLogger(s.log),
	}
	if s.current != nil {
		popts = append(popts, freeform.WithBase(*s.current))
	}

	def, err := freeform.Parse(s.rd, popts...)
	if err != nil {
		pos := start
		// Parse leaves a failing statement in the reader; anything else at
		// the head means the run ended without a complete definition.
		if failed, ok := s.rd.Peek(); ok && s.isAttribute(failed.Keyword) {
			pos = failed.Number
			s.rd.Skip()
			if pos != start {
				// The rest of the run belongs to the failed definition.
				s.skipRun()
			}
		}
		perr := s.diagnose(slog.LevelError, pos, err)
		if s.opts.FailFast {
			return perr
		}
		return nil
	}
	if head, ok := s.rd.Peek(); ok && head.Number == start {
		// Parse consumed nothing: the lookup classifies a statement as a
		// free-form attribute that Parse does not handle.
		s.rd.Skip()
		s.diagnose(slog.LevelWarn, start, fmt.Errorf("%w: %q", ErrUnknownKeyword, head.Keyword))
		return nil
	}
	s.current = &def

	located := Located{Definition: def, Line: start}
	if verr := def.Validate(); verr != nil {
		located.Err = &PositionError{File: s.doc.Name, Line: start, Err: verr}
		s.log.Warn("invalid definition", "line", start, "error", verr)
	} else {
		s.log.Debug("definition", "line", start, "type", def.Type.String(), "degree", def.Degree.String())
	}
	s.doc.Definitions = append(s.doc.Definitions, located)

	if located.Err != nil && s.opts.FailFast {
		return located.Err
	}
	return nil
}

// skipRun drops free-form attribute statements up to the next other
// statement.
func (s *scanner) skipRun() {
	for {
		line, ok := s.rd.Peek()
		if !ok || (line.HasKeyword() && !s.isAttribute(line.Keyword)) {
			return
		}
		s.rd.Skip()
	}
}

func (s *scanner) isAttribute(word string) bool {
	class, _ := s.lookup(word)
	return class == keywords.ClassFreeFormAttribute
}

func (s *scanner) diagnose(level slog.Level, line int, err error) *PositionError {
	perr := &PositionError{File: s.doc.Name, Line: line, Err: err}
	s.doc.Diagnostics = append(s.doc.Diagnostics, Diagnostic{Level: level, Err: perr})
	s.log.Log(s.ctx, level, "statement rejected", "line", line, "error", err)
	return perr
}
