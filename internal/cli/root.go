// Package cli implements the freeform command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/freeform/internal/ctxlog"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks invalid input: bad arguments, invalid definitions.
func userError(err error) error { return &exitError{code: exitUserError, err: err} }

// sysError marks failures of the environment: I/O, storage.
func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// ExitCode maps an error returned by the root command to a process exit
// code. Errors cobra raises itself (unknown flags, wrong argument counts)
// are user errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	yamlMode  bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags rootFlags
	v     *viper.Viper
	cfg   settings
}

// NewRootCmd creates the top-level "freeform" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "freeform",
		Short: "Parse and validate OBJ free-form curve and surface definitions",
		Long: "freeform reads Wavefront OBJ files, folds their cstype, deg, bmat and step\n" +
			"statements into free-form definitions, validates them and keeps a catalog\n" +
			"of valid definitions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/freeform)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "catalog data directory (default: $XDG_DATA_HOME/freeform)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVar(&a.flags.yamlMode, "yaml", false, "output as YAML")
	pf.String("log-level", defaultLogLevel, "log level: debug, info, warn or error")
	pf.String("log-format", defaultLogFormat, "log format: text or json")
	pf.String("v-axis-policy", defaultVAxisPolicy, `"bmat v" on a curve matrix: upgrade or reject`)
	pf.Bool("strict-keywords", false, "report statements with unknown keywords")
	pf.Bool("fail-fast", false, "stop at the first invalid definition")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newParseCmd(a))
	root.AddCommand(newExtractCmd(a, extractRow))
	root.AddCommand(newExtractCmd(a, extractColumn))
	root.AddCommand(newCatalogCmd(a))

	return root
}

// setup loads the configuration and installs the logger in the command's
// context.
func (a *app) setup(cmd *cobra.Command) error {
	if a.flags.jsonMode && a.flags.yamlMode {
		return userError(errors.New("--json and --yaml are mutually exclusive"))
	}

	configDir, err := a.configDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir, cmd.Root().PersistentFlags())
	if err != nil {
		return userError(err)
	}
	a.v = v
	if err := v.Unmarshal(&a.cfg); err != nil {
		return userError(fmt.Errorf("decode config: %w", err))
	}

	logger, err := ctxlog.New(cmd.ErrOrStderr(), a.cfg.LogLevel, a.cfg.LogFormat)
	if err != nil {
		return userError(err)
	}
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	logger.Debug("configuration loaded", "config_dir", configDir, "file", v.ConfigFileUsed())
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "freeform:", err)
	}
	os.Exit(ExitCode(err))
}
