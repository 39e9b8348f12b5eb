package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/atlas/internal/config"
	"github.com/mesh-intelligence/atlas/internal/log"
	"github.com/mesh-intelligence/atlas/internal/paths"
	"github.com/mesh-intelligence/atlas/pkg/atlas"
	"github.com/mesh-intelligence/atlas/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir   string
	flagScenarioDir string
	flagJSON        bool
	flagDebug       bool
)

// Loaded by PersistentPreRunE for every subcommand except version.
var (
	configDir  string
	cfg        types.Config
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:           "atlas",
	Short:         "atlas runs loader scenarios against the volume and slide registry",
	Version:       atlas.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		dir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return systemError(fmt.Errorf("resolve config dir: %w", err))
		}
		loaded, err := config.Load(dir)
		if err != nil {
			return userError(err)
		}
		configDir, cfg = dir, loaded
		if flagJSON {
			cfg.Output = types.OutputJSON
		}
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
		log.Reset()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir, or $ATLAS_CONFIG_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagScenarioDir, "scenario-dir", "", "directory for relative scenario paths (default: $(CWD)/scenarios)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "write a debug log")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(opsCmd)
}

// setupLogging enables the debug log when --debug, the config file or
// ATLAS_DEBUG asks for it. A relative log file lives in the config dir.
func setupLogging() error {
	if !flagDebug && !cfg.Debug && !log.DebugFromEnv() {
		return nil
	}
	if cfg.LogFile == "" {
		log.InitWriter(os.Stderr)
		return nil
	}
	path := cfg.LogFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(configDir, path)
	}
	cleanup, err := log.Init(path)
	if err != nil {
		return systemError(err)
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "config loaded", "dir", configDir, "output", cfg.OutputFormat())
	return nil
}

// resolveScenarioDir applies flag > config.yaml > env > default.
func resolveScenarioDir() (string, error) {
	return paths.ResolveScenarioDir(flagScenarioDir, cfg.ScenarioDir)
}
