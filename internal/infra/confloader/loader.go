package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the prefix of environment variables read by Load.
const DefaultEnvPrefix = "MAPZONE_"

// Layer names reported by Sources.
const (
	SourceFile      = "file"
	SourceEnv       = "env"
	SourceOverrides = "overrides"
)

// layer is one configuration source. Later layers win.
type layer struct {
	name   string
	load   func(k *koanf.Koanf) error
	active func() bool
}

// Loader merges a YAML file, MAPZONE_* environment variables and
// command-line overrides, in that order, onto a defaults-filled struct.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	overrides map[string]any
	applied   []string
}

type Option func(*Loader)

func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// WithConfigFile sets the YAML file. An empty path disables the file layer.
func WithConfigFile(path string) Option {
	return func(l *Loader) { l.filePath = path }
}

// WithOverrides sets dotted-key values applied last, typically the
// flags given on the command line.
func WithOverrides(values map[string]any) Option {
	return func(l *Loader) { l.overrides = values }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{k: koanf.New("."), envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FilePath returns the configuration file path, if any.
func (l *Loader) FilePath() string {
	return l.filePath
}

func (l *Loader) layers() []layer {
	return []layer{
		{
			name:   SourceFile,
			active: func() bool { return l.filePath != "" },
			load: func(k *koanf.Koanf) error {
				return k.Load(file.Provider(l.filePath), yaml.Parser())
			},
		},
		{
			name:   SourceEnv,
			active: func() bool { return true },
			load: func(k *koanf.Koanf) error {
				return k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
					return EnvKey(l.envPrefix, s)
				}), nil)
			},
		},
		{
			name:   SourceOverrides,
			active: func() bool { return len(l.overrides) > 0 },
			load: func(k *koanf.Koanf) error {
				return k.Load(mapProvider(l.overrides), nil)
			},
		},
	}
}

// Load applies every active layer and unmarshals the result into target.
// Fields no layer sets keep their current value.
func (l *Loader) Load(target any) error {
	l.applied = l.applied[:0]
	for _, ly := range l.layers() {
		if !ly.active() {
			continue
		}
		if err := ly.load(l.k); err != nil {
			return fmt.Errorf("load %s: %w", ly.name, err)
		}
		l.applied = append(l.applied, ly.name)
	}

	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// Reload discards everything loaded so far and loads all layers again.
func (l *Loader) Reload(target any) error {
	l.k = koanf.New(".")
	return l.Load(target)
}

// Sources returns the names of the layers applied by the last Load.
func (l *Loader) Sources() []string {
	return append([]string(nil), l.applied...)
}

// EnvKey converts an environment variable name to a configuration key.
// The first underscore after the prefix separates the section from the
// key, so MAPZONE_TELEMETRY_TRACE_FILE becomes telemetry.trace_file.
func EnvKey(prefix, name string) string {
	s := strings.ToLower(strings.TrimPrefix(name, prefix))
	return strings.Replace(s, "_", ".", 1)
}
