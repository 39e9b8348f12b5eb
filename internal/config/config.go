// Package config loads the atlas CLI configuration from config.yaml in the
// resolved configuration directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/atlas/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// FileName is the configuration file inside the config directory.
	FileName = "config.yaml"

	// EnvPrefix namespaces environment overrides, e.g. ATLAS_OUTPUT=json.
	EnvPrefix = "ATLAS"
)

// Config keys.
const (
	KeyLogFile     = "log_file"
	KeyDebug       = "debug"
	KeyMetrics     = "metrics"
	KeyOutput      = "output"
	KeyScenarioDir = "scenario_dir"

	KeyTraceExporter   = "tracing.exporter"
	KeyTraceFile       = "tracing.file_path"
	KeyTraceSampleRate = "tracing.sample_rate"
)

// Defaults returns the configuration used when config.yaml is absent or
// leaves a key unset.
func Defaults() types.Config {
	return types.Config{
		LogFile: "atlas.log",
		Output:  types.OutputText,
		Tracing: types.TracingConfig{
			Exporter:   types.TraceExporterNone,
			SampleRate: 1,
		},
	}
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# atlas CLI configuration

# Output format for run reports: text or json
output: text

# Print registry metrics after each run
metrics: false

# Debug log (enabled by --debug or ATLAS_DEBUG)
debug: false
log_file: atlas.log

# Directory searched for relative scenario paths (optional)
# scenario_dir:

# Scenario spans: none, file or stdout
tracing:
  exporter: none
  # file_path: traces.jsonl
  sample_rate: 1
`

// Load reads config.yaml from configDir using Viper, creating the directory
// and a default file on first run. A missing file is not an error.
// ATLAS_* environment variables override file values.
func Load(configDir string) (types.Config, error) {
	if err := EnsureDefault(configDir); err != nil {
		return types.Config{}, err
	}

	v := newViper(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config %s: %w", filepath.Join(configDir, FileName), err)
	}
	return cfg, nil
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyDebug, d.Debug)
	v.SetDefault(KeyMetrics, d.Metrics)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyScenarioDir, d.ScenarioDir)
	v.SetDefault(KeyTraceExporter, d.Tracing.Exporter)
	v.SetDefault(KeyTraceFile, d.Tracing.FilePath)
	v.SetDefault(KeyTraceSampleRate, d.Tracing.SampleRate)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// EnsureDefault creates configDir and writes the default config.yaml if
// the file does not exist yet.
func EnsureDefault(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(configDir, FileName)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// Write replaces config.yaml in configDir with cfg. It refuses an invalid
// configuration.
func Write(configDir string, cfg types.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(filepath.Join(configDir, FileName), data, 0o644)
}
