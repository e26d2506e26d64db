package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yndnr/mapzone-go/internal/core/domain"
	"github.com/yndnr/mapzone-go/internal/infra/confloader"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry should be enabled by default")
	}
	if cfg.Telemetry.Identifier != domain.IdentifierSlot {
		t.Errorf("Telemetry.Identifier = %q, want %q", cfg.Telemetry.Identifier, domain.IdentifierSlot)
	}
	if cfg.Limits.MaxPlotChannels != 16 {
		t.Errorf("Limits.MaxPlotChannels = %d, want 16", cfg.Limits.MaxPlotChannels)
	}
	if cfg.WorkerLimits().MaxWorkers != 16 {
		t.Errorf("WorkerLimits().MaxWorkers = %d, want 16", cfg.WorkerLimits().MaxWorkers)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"identifier", func(c *Config) { c.Telemetry.Identifier = "pointer" }},
		{"metrics addr", func(c *Config) { c.Telemetry.MetricsAddr = "9464" }},
		{"zero channels", func(c *Config) { c.Limits.MaxPlotChannels = 0 }},
		{"output format", func(c *Config) { c.Output.Format = "csv" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Verify(cfg)
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Verify() error = %v, want %v", err, domain.ErrInvalidConfig)
			}
		})
	}
}

func TestVerify_Valid(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "DEBUG"
	cfg.Log.Format = "json"
	cfg.Telemetry.Identifier = "hash"
	cfg.Telemetry.MetricsAddr = "127.0.0.1:0"
	cfg.Output.Format = "yaml"

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapzone.yaml")
	content := `
log:
  level: debug
telemetry:
  enabled: false
  identifier: hash
limits:
  max_plot_channels: 8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("MAPZONE_OUTPUT_FORMAT", "json")

	cfg := Default()
	if err := confloader.NewLoader(confloader.WithConfigFile(path)).Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, DefaultLogFormat)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled should be false")
	}
	if cfg.Limits.MaxPlotChannels != 8 {
		t.Errorf("Limits.MaxPlotChannels = %d, want 8", cfg.Limits.MaxPlotChannels)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "json")
	}
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}
