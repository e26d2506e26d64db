package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapzone-go/internal/cli/output"
	"github.com/yndnr/mapzone-go/internal/config"
	"github.com/yndnr/mapzone-go/internal/core/domain"
	"github.com/yndnr/mapzone-go/internal/core/service"
	"github.com/yndnr/mapzone-go/internal/telemetry/logger"
)

// extraOptions are appended to every coordinator; tests use it to drop
// the workload delay.
var extraOptions []service.Option

// run is the action shared by the three programs. Arguments are
// validated before any worker, server or watcher is started.
func run(c *cli.Context, variant service.Variant) (err error) {
	cfg, loader, err := loadConfig(c)
	if err != nil {
		return exitError(err)
	}

	numWorkers, perWorker, err := parseArgs(c, cfg, variant)
	if err != nil {
		if domain.IsArgumentError(err) {
			printUsage(c)
		}
		return exitError(err)
	}

	env, err := newRunEnv(c, cfg, loader, variant)
	defer func() {
		if cerr := env.close(); cerr != nil && err == nil {
			err = exitError(fmt.Errorf("shutdown: %w", cerr))
		}
	}()
	if err != nil {
		return exitError(err)
	}

	ctx := logger.WithLogger(c.Context, env.log)
	opts := []service.Option{
		service.WithSink(env.sink),
		service.WithIdentifier(env.ident),
		service.WithOutput(outWriter(c)),
		service.WithMetrics(env.metrics),
		service.WithLimits(limitsFor(cfg, variant)),
		service.WithRunID(env.runID),
	}
	coord := service.NewCoordinator(variant, append(opts, extraOptions...)...)

	var report *service.Report
	if variant == service.VariantSingle {
		report, err = coord.RunSequential(ctx, perWorker)
	} else {
		report, err = coord.Run(ctx, numWorkers, perWorker)
	}
	if err != nil {
		return exitError(err)
	}

	if err := printSummary(c, cfg, report); err != nil {
		return exitError(err)
	}
	env.linger(ctx, ParseGlobalFlags(c).Linger)
	return nil
}

// parseArgs validates the positional arguments for the variant.
func parseArgs(c *cli.Context, cfg *config.Config, variant service.Variant) (numWorkers, perWorker int, err error) {
	args := c.Args()

	if variant == service.VariantSingle {
		if args.Len() != 0 {
			return 0, 0, domain.ErrUsage.WithDetails(fmt.Sprintf("expected no arguments, got %d", args.Len()))
		}
		return 1, service.SingleIterations, nil
	}

	if args.Len() != 2 {
		return 0, 0, domain.ErrUsage.WithDetails(fmt.Sprintf("expected 2 arguments, got %d", args.Len()))
	}
	return domain.ParseCounts(args.Get(0), args.Get(1), limitsFor(cfg, variant))
}

// limitsFor returns the worker limits of a variant. Only the per-thread
// program is bounded, by the number of plot channels.
func limitsFor(cfg *config.Config, variant service.Variant) domain.Limits {
	if variant == service.VariantPerThread {
		return cfg.WorkerLimits()
	}
	return domain.Limits{}
}

const undefinedFlagPrefix = "flag provided but not defined: "

// onUsageError reports flag parsing failures like any other argument
// error. The flag parser reads a negative count placed before the
// positionals, as in "-3 3", as an unknown flag, so that case is
// mapped back to an invalid numThreads.
func onUsageError(variant service.Variant) cli.OnUsageErrorFunc {
	return func(c *cli.Context, err error, _ bool) error {
		derr := domain.ErrUsage.WithDetails(err.Error()).WithCause(err)
		if name, ok := strings.CutPrefix(err.Error(), undefinedFlagPrefix); ok && variant != service.VariantSingle {
			if _, convErr := strconv.Atoi(name); convErr == nil {
				derr = domain.ErrInvalidThreads.WithDetails(fmt.Sprintf("got %q", name))
			}
		}
		printUsage(c)
		return exitError(derr)
	}
}

func printUsage(c *cli.Context) {
	fmt.Fprintf(errWriter(c), "usage: %s [options] %s\n", c.App.Name, c.App.ArgsUsage)
}

func printSummary(c *cli.Context, cfg *config.Config, report *service.Report) error {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return domain.ErrInvalidConfig.WithDetails(err.Error())
	}
	return output.NewFormatter(format).Format(errWriter(c), NewSummary(report))
}

// exitError converts err into an exit coder with status 1.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(cli.ExitCoder); ok {
		return err
	}
	return cli.Exit(err.Error(), 1)
}
