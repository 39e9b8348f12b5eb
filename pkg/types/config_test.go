package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "unknown output returns ErrOutputUnknown",
			config:  Config{Output: "xml"},
			wantErr: ErrOutputUnknown,
		},
		{
			name:    "debug without log file returns ErrLogFileEmpty",
			config:  Config{Debug: true},
			wantErr: ErrLogFileEmpty,
		},
		{
			name:    "valid json config",
			config:  Config{Output: OutputJSON, LogFile: "atlas.log", Debug: true},
			wantErr: nil,
		},
		{
			name:    "unknown trace exporter",
			config:  Config{Tracing: TracingConfig{Exporter: "jaeger"}},
			wantErr: ErrTraceExporterUnknown,
		},
		{
			name:    "file exporter without path",
			config:  Config{Tracing: TracingConfig{Exporter: TraceExporterFile}},
			wantErr: ErrTraceFileEmpty,
		},
		{
			name:    "sample rate above one",
			config:  Config{Tracing: TracingConfig{Exporter: TraceExporterStdout, SampleRate: 1.5}},
			wantErr: ErrSampleRate,
		},
		{
			name:    "file exporter with path",
			config:  Config{Tracing: TracingConfig{Exporter: TraceExporterFile, FilePath: "traces.jsonl", SampleRate: 0.5}},
			wantErr: nil,
		},
		{
			name:    "zero config is valid",
			config:  Config{},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigOutputFormat(t *testing.T) {
	if got := (Config{}).OutputFormat(); got != OutputText {
		t.Fatalf("expected %q, got %q", OutputText, got)
	}
	if got := (Config{Output: OutputJSON}).OutputFormat(); got != OutputJSON {
		t.Fatalf("expected %q, got %q", OutputJSON, got)
	}
}

func TestTracingEnabled(t *testing.T) {
	for exporter, want := range map[string]bool{
		"":                  false,
		TraceExporterNone:   false,
		TraceExporterFile:   true,
		TraceExporterStdout: true,
	} {
		if got := (TracingConfig{Exporter: exporter}).Enabled(); got != want {
			t.Errorf("Enabled() for %q = %t, want %t", exporter, got, want)
		}
	}
}
