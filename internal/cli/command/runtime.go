package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapzone-go/internal/config"
	"github.com/yndnr/mapzone-go/internal/core/domain"
	"github.com/yndnr/mapzone-go/internal/core/service"
	"github.com/yndnr/mapzone-go/internal/infra/confloader"
	"github.com/yndnr/mapzone-go/internal/infra/shutdown"
	"github.com/yndnr/mapzone-go/internal/telemetry/logger"
	"github.com/yndnr/mapzone-go/internal/telemetry/metric"
	"github.com/yndnr/mapzone-go/internal/telemetry/profiler"
	"github.com/yndnr/mapzone-go/internal/telemetry/tracer"
)

// shutdownTimeout bounds the time spent flushing traces and stopping servers.
const shutdownTimeout = 5 * time.Second

// runEnv holds everything a run needs besides its arguments.
type runEnv struct {
	cfg      *config.Config
	loader   *confloader.Loader
	log      logger.Logger
	runID    domain.RunID
	ident    domain.Identifier
	metrics  *metric.Registry
	server   *metric.Server
	sink     profiler.Sink
	shutdown *shutdown.Handler
}

// loadConfig loads defaults, the config file, MAPZONE_* variables and
// flag overrides, then verifies the result.
func loadConfig(c *cli.Context) (*config.Config, *confloader.Loader, error) {
	flags := ParseGlobalFlags(c)
	cfg := config.Default()

	loader := confloader.NewLoader(
		confloader.WithConfigFile(flags.ConfigFile),
		confloader.WithOverrides(Overrides(c)),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, nil, domain.ErrInvalidConfig.WithDetails(err.Error()).WithCause(err)
	}
	if err := config.Verify(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

// initLogger creates the logger and installs it as the default.
func initLogger(cfg *config.Config, w io.Writer) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: w,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

// newRunEnv wires logging and telemetry for one run. Callers must call
// env.close when done, even on error.
func newRunEnv(c *cli.Context, cfg *config.Config, loader *confloader.Loader, variant service.Variant) (*runEnv, error) {
	env := &runEnv{
		cfg:      cfg,
		loader:   loader,
		shutdown: shutdown.NewHandler(shutdownTimeout),
		metrics:  metric.NewRegistry(),
		sink:     profiler.Noop{},
	}

	var err error
	if env.log, err = initLogger(cfg, errWriter(c)); err != nil {
		return env, fmt.Errorf("init logger: %w", err)
	}
	env.log.Debug("configuration loaded", "sources", loader.Sources(), "file", loader.FilePath())
	if env.runID, err = domain.NewRunID(); err != nil {
		return env, fmt.Errorf("generate run id: %w", err)
	}
	if env.ident, err = domain.NewIdentifier(cfg.Telemetry.Identifier); err != nil {
		return env, err
	}

	if err := env.startMetrics(); err != nil {
		return env, err
	}
	if err := env.startTelemetry(c, variant); err != nil {
		return env, err
	}
	env.watchConfig()

	return env, nil
}

func (e *runEnv) startMetrics() error {
	addr := e.cfg.Telemetry.MetricsAddr
	if addr == "" {
		return nil
	}

	srv, err := e.metrics.Listen(addr)
	if err != nil {
		return fmt.Errorf("start metrics server: %w", err)
	}
	e.server = srv
	e.shutdown.OnShutdown(func(ctx context.Context) error {
		e.log.Debug("stopping metrics server")
		return srv.Shutdown(ctx)
	})
	e.log.Info("metrics endpoint listening", "addr", srv.Addr())
	return nil
}

func (e *runEnv) startTelemetry(c *cli.Context, variant service.Variant) error {
	if !e.cfg.Telemetry.Enabled {
		e.log.Debug("telemetry disabled")
		return nil
	}

	var tp *tracer.Provider
	if path := e.cfg.Telemetry.TraceFile; path != "" {
		w, err := e.traceWriter(c, path)
		if err != nil {
			return err
		}
		tp, err = tracer.New(c.App.Name,
			tracer.WithWriter(w),
			tracer.WithAttributes(map[string]string{
				"run.id":          e.runID.String(),
				"mapzone.variant": string(variant),
			}))
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		e.shutdown.OnShutdown(func(ctx context.Context) error {
			e.log.Debug("flushing traces")
			return tp.Shutdown(ctx)
		})
	}

	e.sink = profiler.NewTelemetry(tp, e.metrics, e.log)
	return nil
}

// traceWriter opens the trace destination. "-" selects the error writer.
func (e *runEnv) traceWriter(c *cli.Context, path string) (io.Writer, error) {
	if path == "-" {
		return errWriter(c), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	// Registered before the tracer hook, so it runs after the final flush.
	e.shutdown.OnShutdown(func(context.Context) error {
		return f.Close()
	})
	return f, nil
}

// watchConfig reapplies log.level whenever the config file changes.
// Watch failures are logged and otherwise ignored.
func (e *runEnv) watchConfig() {
	path := e.loader.FilePath()
	if path == "" {
		return
	}

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(e.log))
	if err != nil {
		e.log.Warn("config watcher unavailable", "error", err)
		return
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return
	}

	w.OnChange(func(string) {
		next := config.Default()
		if err := e.loader.Reload(next); err != nil {
			e.log.Warn("config reload failed", "error", err)
			return
		}
		if err := config.Verify(next); err != nil {
			e.log.Warn("config reload rejected", "error", err)
			return
		}
		if next.Log.Level != logger.GetLevel() {
			logger.SetLevel(next.Log.Level)
			e.log.Info("log level changed", "level", next.Log.Level)
		}
	})
	w.StartAsync()

	e.shutdown.OnShutdown(func(context.Context) error {
		return w.Stop()
	})
}

// linger keeps the metrics endpoint up for d after the run.
func (e *runEnv) linger(ctx context.Context, d time.Duration) {
	if e.server == nil || d <= 0 {
		return
	}
	e.log.Info("lingering for metrics scrape", "addr", e.server.Addr(), "duration", d.String())
	if !e.shutdown.Linger(ctx, d) {
		e.log.Info("linger interrupted")
	}
}

// close runs all shutdown hooks.
func (e *runEnv) close() error {
	return e.shutdown.Shutdown(context.Background())
}
