package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freeform/internal/scan"
	"github.com/mesh-intelligence/freeform/pkg/freeform"
)

// fileReport is the structured output of parse for one file.
type fileReport struct {
	File        string             `json:"file" yaml:"file"`
	Valid       bool               `json:"valid" yaml:"valid"`
	Vertices    vertexCounts       `json:"vertices" yaml:"vertices"`
	Definitions []definitionReport `json:"definitions" yaml:"definitions"`
	Diagnostics []diagnosticReport `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type vertexCounts struct {
	V  int `json:"v" yaml:"v"`
	VT int `json:"vt" yaml:"vt"`
	VN int `json:"vn" yaml:"vn"`
	VP int `json:"vp" yaml:"vp"`
}

type definitionReport struct {
	Index      int             `json:"index" yaml:"index"`
	Line       int             `json:"line" yaml:"line"`
	Valid      bool            `json:"valid" yaml:"valid"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
	Definition freeform.Record `json:"definition" yaml:"definition"`
}

type diagnosticReport struct {
	Line  int    `json:"line" yaml:"line"`
	Level string `json:"level" yaml:"level"`
	Error string `json:"error" yaml:"error"`
}

func newFileReport(doc *scan.Document) fileReport {
	r := fileReport{
		File:        doc.Name,
		Valid:       doc.Valid(),
		Definitions: []definitionReport{},
	}
	r.Vertices.V, r.Vertices.VT, r.Vertices.VN, r.Vertices.VP = doc.Vertices.Counts()
	for i, l := range doc.Definitions {
		d := definitionReport{
			Index:      i + 1,
			Line:       l.Line,
			Valid:      l.Valid(),
			Definition: l.Definition.Record(),
		}
		if l.Err != nil {
			d.Error = l.Err.Err.Error()
		}
		r.Definitions = append(r.Definitions, d)
	}
	for _, diag := range doc.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, diagnosticReport{
			Line:  diag.Err.Line,
			Level: diag.Level.String(),
			Error: diag.Err.Err.Error(),
		})
	}
	return r
}

func newParseCmd(a *app) *cobra.Command {
	var statements bool

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse and validate the free-form definitions in OBJ files",
		Long: "parse reads each file, reports every free-form definition it finds with\n" +
			"its validation result, and lists statements that failed to parse.\n" +
			"Exits 1 if any definition is invalid.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				reports []fileReport
				invalid int
			)
			for _, path := range args {
				doc, err := a.scanFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				if !doc.Valid() {
					invalid++
				}
				reports = append(reports, newFileReport(doc))
			}

			out := cmd.OutOrStdout()
			done, err := a.structured(out, reports)
			if err != nil {
				return sysError(err)
			}
			if !done {
				for _, r := range reports {
					printFileReport(out, r, statements)
				}
			}
			if invalid > 0 {
				return userError(fmt.Errorf("%d of %d files have invalid definitions", invalid, len(args)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&statements, "statements", false, "print each definition as normalized OBJ statements")
	return cmd
}

func printFileReport(w io.Writer, r fileReport, statements bool) {
	fmt.Fprintf(w, "%s: %d definitions, %d diagnostics, %d vertices\n",
		r.File, len(r.Definitions), len(r.Diagnostics), r.Vertices.V)
	for _, d := range r.Definitions {
		status := "ok"
		if !d.Valid {
			status = "invalid: " + d.Error
		}
		def, err := d.Definition.Definition()
		if err != nil {
			fmt.Fprintf(w, "  #%d line %d: %s\n", d.Index, d.Line, status)
			continue
		}
		fmt.Fprintf(w, "  #%d line %d: %s: %s\n", d.Index, d.Line, def, status)
		if statements {
			for _, stmt := range def.Statements() {
				fmt.Fprintf(w, "      %s\n", stmt)
			}
		}
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "  %s %s:%d: %s\n", d.Level, r.File, d.Line, d.Error)
	}
}

// scanFile opens and scans one OBJ file. Parse and validation failures are
// in the returned document, including the one that stopped a fail-fast scan.
func (a *app) scanFile(ctx context.Context, path string) (*scan.Document, error) {
	opts, err := a.scanOptions()
	if err != nil {
		return nil, userError(err)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, userError(err)
		}
		return nil, sysError(err)
	}
	defer f.Close()

	doc, err := scan.Scan(ctx, f, path, opts)
	var perr *scan.PositionError
	switch {
	case errors.As(err, &perr):
		return doc, nil
	case err != nil:
		return nil, sysError(err)
	}
	return doc, nil
}
