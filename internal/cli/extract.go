package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freeform/pkg/freeform"
	"github.com/mesh-intelligence/freeform/pkg/obj"
)

// extractKind selects the command newExtractCmd builds.
type extractKind int

const (
	extractRow extractKind = iota
	extractColumn
)

// axisValues is the structured output of row and column.
type axisValues struct {
	U []float64 `json:"u" yaml:"u,flow"`
	V []float64 `json:"v,omitempty" yaml:"v,omitempty,flow"`
}

func newExtractCmd(a *app, kind extractKind) *cobra.Command {
	name, extract := "row", freeform.Definition.Row
	if kind == extractColumn {
		name, extract = "column", freeform.Definition.Column
	}

	return &cobra.Command{
		Use:   name + " <file> <definition> <n>",
		Short: "Print " + name + " n of a basis matrix definition",
		Long: "Prints " + name + " n (1-based) of each axis of a basis matrix definition.\n" +
			"<definition> is the 1-based position of the definition in the file;\n" +
			"negative values count from the end; put them after \"--\".",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := obj.ParseIndex(args[1])
			if err != nil {
				return userError(fmt.Errorf("definition: %w", err))
			}
			n, err := strconv.ParseUint(args[2], 10, 0)
			if err != nil || n == 0 {
				return userError(fmt.Errorf("%s: %q is not a positive integer", name, args[2]))
			}

			doc, err := a.scanFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			located, err := doc.Definition(idx)
			if err != nil {
				return userError(err)
			}
			axes, ok := extract(located.Definition, uint(n))
			if !ok {
				return userError(fmt.Errorf("%s %d not found in %s (line %d)", name, n, located.Definition, located.Line))
			}

			vals := axisValues{U: axes[0]}
			if len(axes) > 1 {
				vals.V = axes[1]
			}
			out := cmd.OutOrStdout()
			if done, err := a.structured(out, vals); done || err != nil {
				if err != nil {
					return sysError(err)
				}
				return nil
			}
			fmt.Fprintf(out, "u: %s\n", formatFloats(vals.U))
			if vals.V != nil {
				fmt.Fprintf(out, "v: %s\n", formatFloats(vals.V))
			}
			return nil
		},
	}
}

func formatFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
