package types

// Config holds the CLI settings read from config.yaml.
type Config struct {
	LogFile     string `json:"log_file" yaml:"log_file" mapstructure:"log_file"`
	Debug       bool   `json:"debug" yaml:"debug" mapstructure:"debug"`
	Metrics     bool   `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
	Output      string `json:"output" yaml:"output" mapstructure:"output"`
	ScenarioDir string `json:"scenario_dir,omitempty" yaml:"scenario_dir,omitempty" mapstructure:"scenario_dir"`

	Tracing TracingConfig `json:"tracing" yaml:"tracing,omitempty" mapstructure:"tracing"`
}

// TracingConfig selects where scenario spans are exported.
type TracingConfig struct {
	// Exporter is none, file or stdout. Empty means none.
	Exporter string `json:"exporter" yaml:"exporter" mapstructure:"exporter"`

	// FilePath receives JSONL spans for the file exporter. A relative path
	// lives in the config directory.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty" mapstructure:"file_path"`

	// SampleRate is the fraction of scenario runs traced, in (0, 1].
	// Zero means 1.
	SampleRate float64 `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty" mapstructure:"sample_rate"`
}

// Trace exporters.
const (
	TraceExporterNone   = "none"
	TraceExporterFile   = "file"
	TraceExporterStdout = "stdout"
)

var knownExporters = map[string]bool{
	"":                  true,
	TraceExporterNone:   true,
	TraceExporterFile:   true,
	TraceExporterStdout: true,
}

// Enabled reports whether spans are exported anywhere.
func (t TracingConfig) Enabled() bool {
	return t.Exporter != "" && t.Exporter != TraceExporterNone
}

// Validate checks the exporter and its arguments.
func (t TracingConfig) Validate() error {
	if !knownExporters[t.Exporter] {
		return ErrTraceExporterUnknown
	}
	if t.Exporter == TraceExporterFile && t.FilePath == "" {
		return ErrTraceFileEmpty
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return ErrSampleRate
	}
	return nil
}

// Supported output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// knownOutputs lists the output formats that Validate accepts.
var knownOutputs = map[string]bool{
	OutputText: true,
	OutputJSON: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty Output means text.
func (c Config) Validate() error {
	if c.Output != "" && !knownOutputs[c.Output] {
		return ErrOutputUnknown
	}
	if c.Debug && c.LogFile == "" {
		return ErrLogFileEmpty
	}
	return c.Tracing.Validate()
}

// OutputFormat returns the effective output format.
func (c Config) OutputFormat() string {
	if c.Output == "" {
		return OutputText
	}
	return c.Output
}
