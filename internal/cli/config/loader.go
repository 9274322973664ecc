package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "QUERYDEF_"

// configFileNames are looked up in the working directory, in order.
var configFileNames = []string{"querydef.yaml", "querydef.yml"}

// flagKeys maps flag names whose config key differs from the flag name
// with dashes replaced by underscores.
var flagKeys = map[string]string{
	"debounce": "watch.debounce",
}

// LoadConfig layers defaults, the config file, QUERYDEF_ environment
// variables and explicitly set flags, later sources winning. An explicit
// cfgFile must exist; otherwise querydef.yaml or querydef.yml is used when
// present. flags may be nil.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, changedFlag(flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	cfg.File = path
	return cfg, nil
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"prefix":         d.Prefix,
		"package":        d.Package,
		"log_level":      DefaultLogLevel,
		"verbose":        d.Verbose,
		"output":         d.OutputFormat,
		"color":          d.Color,
		"watch.debounce": d.Watch.Debounce.String(),
	}
}

// findConfigFile returns explicit if set, else the first config file
// present in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey maps QUERYDEF_LOG_LEVEL to log_level and QUERYDEF_WATCH__DEBOUNCE
// to watch.debounce.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// changedFlag only lets flags the user set override lower layers.
func changedFlag(flags *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		return key, posflag.FlagVal(flags, f)
	}
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored by WithConfig, if any.
func FromContext(ctx context.Context) (*Config, bool) {
	if ctx == nil {
		return nil, false
	}
	cfg, ok := ctx.Value(configKey{}).(*Config)
	return cfg, ok
}

// LoggerKey returns the context key the cli package stores the logger under.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.New(slog.DiscardHandler)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// EffectiveLevel is the log level after --verbose is applied.
func (c *Config) EffectiveLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return c.LogLevel
}
