package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freeform/internal/catalog"
	"github.com/mesh-intelligence/freeform/internal/ctxlog"
	"github.com/mesh-intelligence/freeform/pkg/freeform"
)

// entryReport is the structured output of catalog list and show.
type entryReport struct {
	ID         string          `json:"id" yaml:"id"`
	Source     string          `json:"source" yaml:"source"`
	Line       int             `json:"line" yaml:"line"`
	CreatedAt  string          `json:"created_at" yaml:"created_at"`
	Definition freeform.Record `json:"definition" yaml:"definition"`
}

func newEntryReport(e catalog.Entry) entryReport {
	return entryReport{
		ID:         e.ID,
		Source:     e.Source,
		Line:       e.Line,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		Definition: e.Definition.Record(),
	}
}

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Store and query valid free-form definitions",
	}
	cmd.AddCommand(newCatalogAddCmd(a))
	cmd.AddCommand(newCatalogListCmd(a))
	cmd.AddCommand(newCatalogShowCmd(a))
	cmd.AddCommand(newCatalogDeleteCmd(a))
	cmd.AddCommand(newCatalogExportCmd(a))
	return cmd
}

// withStore attaches the catalog for the duration of fn.
func (a *app) withStore(fn func(*catalog.Store) error) (err error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return sysError(err)
	}
	store := catalog.NewStore()
	if err := store.Attach(catalog.Config{DataDir: dataDir}); err != nil {
		return sysError(fmt.Errorf("attach catalog: %w", err))
	}
	defer func() {
		if derr := store.Detach(); derr != nil && err == nil {
			err = sysError(derr)
		}
	}()
	return fn(store)
}

// storeError classifies catalog errors: bad input exits 1, the rest 2.
func storeError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrInvalidID),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, catalog.ErrInvalidDefinition),
		errors.Is(err, catalog.ErrInvalidFilter):
		return userError(err)
	}
	return sysError(err)
}

func newCatalogAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Add the valid definitions of OBJ files to the catalog",
		Long: "add scans each file and stores every definition that validates. Invalid\n" +
			"definitions are skipped; the command then exits 1.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := ctxlog.FromContext(cmd.Context())
			out := cmd.OutOrStdout()
			var added, skipped int

			err := a.withStore(func(store *catalog.Store) error {
				for _, path := range args {
					doc, err := a.scanFile(cmd.Context(), path)
					if err != nil {
						return err
					}
					for _, l := range doc.Definitions {
						if !l.Valid() {
							log.Warn("skipping invalid definition", "file", path, "line", l.Line, "error", l.Err.Err)
							skipped++
							continue
						}
						id, err := store.Add(catalog.Entry{Source: path, Line: l.Line, Definition: l.Definition})
						if err != nil {
							return storeError(err)
						}
						fmt.Fprintf(out, "%s %s:%d %s\n", id, path, l.Line, l.Definition)
						added++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			if skipped > 0 {
				return userError(fmt.Errorf("added %d definitions, skipped %d invalid", added, skipped))
			}
			return nil
		},
	}
}

func newCatalogListCmd(a *app) *cobra.Command {
	var f catalog.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *catalog.Store) error {
				entries, err := store.List(f)
				if err != nil {
					return storeError(err)
				}
				reports := make([]entryReport, 0, len(entries))
				for _, e := range entries {
					reports = append(reports, newEntryReport(e))
				}
				out := cmd.OutOrStdout()
				if done, err := a.structured(out, reports); done || err != nil {
					if err != nil {
						return sysError(err)
					}
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(out, "%s  %s:%d  %s\n", e.ID, e.Source, e.Line, e.Definition)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.Kind, "kind", "", "only entries of this cstype (bmatrix, bezier, bspline, cardinal, taylor)")
	cmd.Flags().StringVar(&f.Source, "source", "", "only entries read from this file")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "maximum number of entries (0 for all)")
	return cmd
}

func newCatalogShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a catalog entry and its OBJ statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *catalog.Store) error {
				e, err := store.Get(args[0])
				if err != nil {
					return storeError(err)
				}
				out := cmd.OutOrStdout()
				if done, err := a.structured(out, newEntryReport(e)); done || err != nil {
					if err != nil {
						return sysError(err)
					}
					return nil
				}
				printEntry(out, e)
				return nil
			})
		},
	}
}

func printEntry(w io.Writer, e catalog.Entry) {
	fmt.Fprintf(w, "id:      %s\n", e.ID)
	fmt.Fprintf(w, "source:  %s:%d\n", e.Source, e.Line)
	fmt.Fprintf(w, "created: %s\n", e.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "type:    %s\n", e.Definition)
	fmt.Fprintln(w)
	for _, stmt := range e.Definition.Statements() {
		fmt.Fprintln(w, stmt)
	}
}

func newCatalogDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an entry from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *catalog.Store) error {
				if err := store.Delete(args[0]); err != nil {
					return storeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newCatalogExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the catalog to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *catalog.Store) error {
				if err := store.Export(args[0]); err != nil {
					return sysError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
				return nil
			})
		},
	}
}
