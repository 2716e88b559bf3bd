package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/freeform/internal/paths"
	"github.com/mesh-intelligence/freeform/internal/scan"
	"github.com/mesh-intelligence/freeform/pkg/freeform"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "FREEFORM"

	cfgKeyDataDir        = "data_dir"
	cfgKeyLogLevel       = "log_level"
	cfgKeyLogFormat      = "log_format"
	cfgKeyVAxisPolicy    = "v_axis_policy"
	cfgKeyStrictKeywords = "strict_keywords"
	cfgKeyFailFast       = "fail_fast"

	defaultLogLevel    = "warn"
	defaultLogFormat   = "text"
	defaultVAxisPolicy = "upgrade"
)

// settings is the decoded configuration. Precedence, highest first: flag,
// FREEFORM_* environment variable, config.yaml, default.
type settings struct {
	DataDir        string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat      string `mapstructure:"log_format" yaml:"log_format"`
	VAxisPolicy    string `mapstructure:"v_axis_policy" yaml:"v_axis_policy"`
	StrictKeywords bool   `mapstructure:"strict_keywords" yaml:"strict_keywords"`
	FailFast       bool   `mapstructure:"fail_fast" yaml:"fail_fast"`
}

func defaultSettings() settings {
	return settings{
		LogLevel:    defaultLogLevel,
		LogFormat:   defaultLogFormat,
		VAxisPolicy: defaultVAxisPolicy,
	}
}

// flagKeys binds persistent flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":       cfgKeyLogLevel,
	"log-format":      cfgKeyLogFormat,
	"v-axis-policy":   cfgKeyVAxisPolicy,
	"strict-keywords": cfgKeyStrictKeywords,
	"fail-fast":       cfgKeyFailFast,
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// directory or file is not an error; defaults apply.
func loadConfig(configDir string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	d := defaultSettings()
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyLogLevel, d.LogLevel)
	v.SetDefault(cfgKeyLogFormat, d.LogFormat)
	v.SetDefault(cfgKeyVAxisPolicy, d.VAxisPolicy)
	v.SetDefault(cfgKeyStrictKeywords, d.StrictKeywords)
	v.SetDefault(cfgKeyFailFast, d.FailFast)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindEnv(cfgKeyDataDir, paths.EnvDataDir); err != nil {
		return nil, err
	}

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether it wrote the file.
func writeConfigIfMissing(path string, cfg settings) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# freeform configuration. Flags and FREEFORM_* variables override it.\n")
	return true, os.WriteFile(path, append(header, data...), 0o644)
}

func (a *app) configDir() (string, error) {
	return paths.ResolveConfigDir(a.flags.configDir)
}

func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.DataDir)
}

// scanOptions turns the configuration into scanner options.
func (a *app) scanOptions() (scan.Options, error) {
	policy, err := freeform.ParseVAxisPolicy(a.cfg.VAxisPolicy)
	if err != nil {
		return scan.Options{}, fmt.Errorf("%s: %w", cfgKeyVAxisPolicy, err)
	}
	return scan.Options{
		VAxisPolicy:    policy,
		StrictKeywords: a.cfg.StrictKeywords,
		FailFast:       a.cfg.FailFast,
	}, nil
}
