package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freeform/internal/catalog"
	"github.com/mesh-intelligence/freeform/internal/ctxlog"
	"github.com/mesh-intelligence/freeform/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and an empty catalog",
		Long: "init writes config.yaml with default values to the configuration directory\n" +
			"unless it already exists, then creates the catalog in the data directory.\n" +
			"Running it again is safe.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := ctxlog.FromContext(cmd.Context())

			configDir, err := a.configDir()
			if err != nil {
				return sysError(err)
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create config dir: %w", err))
			}
			configPath := paths.ConfigFile(configDir)
			wrote, err := writeConfigIfMissing(configPath, defaultSettings())
			if err != nil {
				return sysError(err)
			}
			log.Debug("config file", "path", configPath, "created", wrote)

			dataDir, err := a.dataDir()
			if err != nil {
				return sysError(err)
			}
			store := catalog.NewStore()
			if err := store.Attach(catalog.Config{DataDir: dataDir}); err != nil {
				return sysError(err)
			}
			if err := store.Detach(); err != nil {
				return sysError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:  %s\n", configPath)
			fmt.Fprintf(out, "catalog: %s\n", dataDir)
			return nil
		},
	}
}
