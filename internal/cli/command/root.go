package command

import (
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapzone-go/internal/core/service"
	"github.com/yndnr/mapzone-go/internal/infra/buildinfo"
)

// Program names.
const (
	SingleName    = "mapzone-single"
	SharedName    = "mapzone-shared"
	PerThreadName = "mapzone-perthread"
)

const multiArgsUsage = "<numThreads> <insertsPerThread>"

// SingleApp creates the single-threaded program.
func SingleApp() *cli.App {
	return newApp(SingleName,
		"Insert 100 keys into a map on one thread while emitting profiling zones",
		"",
		service.VariantSingle)
}

// SharedApp creates the multi-threaded program whose workers share one plot.
func SharedApp() *cli.App {
	return newApp(SharedName,
		"Insert keys from several workers that all plot to one channel",
		multiArgsUsage,
		service.VariantShared)
}

// PerThreadApp creates the multi-threaded program with one plot per worker.
func PerThreadApp() *cli.App {
	return newApp(PerThreadName,
		"Insert keys from several workers, each plotting to its own channel",
		multiArgsUsage,
		service.VariantPerThread)
}

func newApp(name, usage, argsUsage string, variant service.Variant) *cli.App {
	return &cli.App{
		Name:      name,
		Usage:     usage,
		ArgsUsage: argsUsage,
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Action: func(c *cli.Context) error {
			return run(c, variant)
		},
		OnUsageError: onUsageError(variant),
		// main turns exit coders into the process status.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// globalFlags returns the flags shared by all three programs.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file (watched for log.level changes)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.BoolFlag{
			Name:  "no-telemetry",
			Usage: "Disable zones, plots and messages",
		},
		&cli.StringFlag{
			Name:  "identifier",
			Usage: "Insert identifier mode: slot, hash",
		},
		&cli.StringFlag{
			Name:  "trace-file",
			Usage: "Write zones as JSON spans to this file (- for stderr)",
		},
		&cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "Serve Prometheus metrics on this address (e.g., 127.0.0.1:9464)",
		},
		&cli.DurationFlag{
			Name:  "linger",
			Usage: "Keep the metrics endpoint up this long after the run",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Summary format: table, json, yaml, none",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Do not print the run summary",
		},
	}
}

// GlobalFlags holds the parsed global flags.
type GlobalFlags struct {
	ConfigFile  string
	LogLevel    string
	LogFormat   string
	NoTelemetry bool
	Identifier  string
	TraceFile   string
	MetricsAddr string
	Linger      time.Duration
	Output      string
	Quiet       bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigFile:  c.String("config"),
		LogLevel:    c.String("log-level"),
		LogFormat:   c.String("log-format"),
		NoTelemetry: c.Bool("no-telemetry"),
		Identifier:  c.String("identifier"),
		TraceFile:   c.String("trace-file"),
		MetricsAddr: c.String("metrics-addr"),
		Linger:      c.Duration("linger"),
		Output:      c.String("output"),
		Quiet:       c.Bool("quiet"),
	}
}

// Overrides returns the configuration keys set explicitly on the command line.
func Overrides(c *cli.Context) map[string]any {
	flags := ParseGlobalFlags(c)
	out := make(map[string]any)

	set := func(flag, key string, value any) {
		if c.IsSet(flag) {
			out[key] = value
		}
	}
	set("log-level", "log.level", flags.LogLevel)
	set("log-format", "log.format", flags.LogFormat)
	set("identifier", "telemetry.identifier", flags.Identifier)
	set("trace-file", "telemetry.trace_file", flags.TraceFile)
	set("metrics-addr", "telemetry.metrics_addr", flags.MetricsAddr)
	set("output", "output.format", flags.Output)
	if flags.NoTelemetry {
		out["telemetry.enabled"] = false
	}
	if flags.Quiet {
		out["output.format"] = "none"
	}
	return out
}

// errWriter returns the App's error writer, defaulting to stderr.
func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// outWriter returns the App's writer, defaulting to stdout.
func outWriter(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}
