// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user configuration and data directories.
const AppName = "freeform"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides. EnvDataDir is read
// through the configuration layer, so it sits between the flag and the
// config file.
const (
	EnvConfigDir = "FREEFORM_CONFIG_DIR"
	EnvDataDir   = "FREEFORM_DATA_DIR"
)

// platform holds the platform-detection hooks; tests override them.
var platform = struct {
	goos          string
	getenv        func(string) string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	getenv:        os.Getenv,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/freeform (fallback ~/.config/freeform)
// macOS:   ~/Library/Application Support/freeform
// Windows: %APPDATA%/freeform
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform default data directory.
//
// Linux:   $XDG_DATA_HOME/freeform (fallback ~/.local/share/freeform)
// macOS and Windows: same as the config directory.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// xdgDir applies the XDG base directory rules on Linux and the user config
// directory elsewhere.
func xdgDir(env, homeFallback string) (string, error) {
	if platform.goos != "linux" {
		dir, err := platform.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := platform.getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeFallback, AppName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > FREEFORM_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := platform.getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the catalog data directory following the
// precedence chain: flag > configured value > DefaultDataDir(). The
// configured value already reflects FREEFORM_DATA_DIR and config.yaml.
func ResolveDataDir(flag, configured string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configured != "" {
		return filepath.Abs(configured)
	}
	return DefaultDataDir()
}

// ConfigFile returns the path of the configuration file in dir.
func ConfigFile(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}
