package config

// Config is the root configuration shared by the three mapzone programs.
type Config struct {
	Log       LogSection       `koanf:"log" yaml:"log"`
	Telemetry TelemetrySection `koanf:"telemetry" yaml:"telemetry"`
	Limits    LimitsSection    `koanf:"limits" yaml:"limits"`
	Output    OutputSection    `koanf:"output" yaml:"output"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// TelemetrySection configures the instrumentation sink.
type TelemetrySection struct {
	// Enabled turns zones, plots and messages on. Disabling it never
	// changes what is inserted.
	Enabled bool `koanf:"enabled" yaml:"enabled"`

	// Identifier selects how insert identifiers are derived: slot or hash.
	Identifier string `koanf:"identifier" yaml:"identifier"`

	// TraceFile receives zones as JSON spans. "-" means stderr.
	TraceFile string `koanf:"trace_file" yaml:"trace_file"`

	// MetricsAddr serves /metrics when set (e.g., "127.0.0.1:9464").
	MetricsAddr string `koanf:"metrics_addr" yaml:"metrics_addr"`
}

// LimitsSection bounds accepted arguments.
type LimitsSection struct {
	// MaxPlotChannels is the largest numThreads accepted by the
	// per-thread program.
	MaxPlotChannels int `koanf:"max_plot_channels" yaml:"max_plot_channels"`
}

// OutputSection configures the run summary.
type OutputSection struct {
	// Format is table, json, yaml or none.
	Format string `koanf:"format" yaml:"format"`
}
