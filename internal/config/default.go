package config

import "github.com/yndnr/mapzone-go/internal/core/domain"

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultIdentifier      = domain.IdentifierSlot
	DefaultMaxPlotChannels = 16

	DefaultOutputFormat = "table"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Telemetry: TelemetrySection{
			Enabled:    true,
			Identifier: DefaultIdentifier,
		},
		Limits: LimitsSection{
			MaxPlotChannels: DefaultMaxPlotChannels,
		},
		Output: OutputSection{
			Format: DefaultOutputFormat,
		},
	}
}

// WorkerLimits returns the validation limits for the per-thread program.
func (c *Config) WorkerLimits() domain.Limits {
	return domain.Limits{MaxWorkers: c.Limits.MaxPlotChannels}
}
