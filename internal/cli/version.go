package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time through -ldflags.
var Version = "dev"

const modulePath = "github.com/mesh-intelligence/freeform"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the freeform version",
		Args:  cobra.NoArgs,
		// No configuration needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "freeform %s\nmodule: %s\n", Version, modulePath)
		},
	}
}
