// Package paths resolves the configuration and scenario directory
// locations used by the atlas CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under platform config and data roots.
const appName = "atlas"

// CWD-relative directory names.
const (
	DefaultConfigDirName   = ".atlas"
	DefaultScenarioDirName = "scenarios"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir   = "ATLAS_CONFIG_DIR"
	EnvScenarioDir = "ATLAS_SCENARIO_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/atlas (fallback ~/.config/atlas)
// macOS:   ~/Library/Application Support/atlas
// Windows: %APPDATA%/atlas
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > ATLAS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveScenarioDir returns the directory that relative scenario paths
// are looked up in: flag > config.yaml scenario_dir > ATLAS_SCENARIO_DIR
// env > $(CWD)/scenarios.
func ResolveScenarioDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvScenarioDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultScenarioDirName), nil
}

// ResolveScenario locates a scenario file. Absolute paths and paths that
// exist relative to the working directory are used as given; anything else
// is joined to dir.
func ResolveScenario(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(dir, name)
}
