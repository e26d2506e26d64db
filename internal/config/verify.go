package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/mapzone-go/internal/core/domain"
)

var (
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validFormats = []string{"json", "text"}
	validOutputs = []string{"table", "json", "yaml", "none"}
)

// Verify validates the configuration. Errors wrap domain.ErrInvalidConfig.
func Verify(cfg *Config) error {
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if err := verifyTelemetry(&cfg.Telemetry); err != nil {
		return err
	}
	if cfg.Limits.MaxPlotChannels < 1 {
		return invalid("limits.max_plot_channels must be at least 1, got %d", cfg.Limits.MaxPlotChannels)
	}
	if !oneOf(cfg.Output.Format, validOutputs) {
		return invalid("output.format must be one of %s, got %q", strings.Join(validOutputs, ", "), cfg.Output.Format)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !oneOf(cfg.Level, validLevels) {
		return invalid("log.level must be one of %s, got %q", strings.Join(validLevels, ", "), cfg.Level)
	}
	if !oneOf(cfg.Format, validFormats) {
		return invalid("log.format must be one of %s, got %q", strings.Join(validFormats, ", "), cfg.Format)
	}
	return nil
}

func verifyTelemetry(cfg *TelemetrySection) error {
	if _, err := domain.NewIdentifier(cfg.Identifier); err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			return invalid("telemetry.metrics_addr %q: %v", cfg.MetricsAddr, err)
		}
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	v = strings.ToLower(v)
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func invalid(format string, args ...any) error {
	return domain.ErrInvalidConfig.WithDetails(fmt.Sprintf(format, args...))
}
