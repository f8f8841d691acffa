// Package config loads ewbench settings from a YAML file, EWBENCH_*
// environment variables, a .env file and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-bench/bench"
	"github.com/cwbudde/algo-bench/report"
	"github.com/cwbudde/algo-bench/suite"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// EnvPrefix prefixes environment overrides, e.g. EWBENCH_SUITE_REPETITIONS.
const EnvPrefix = "EWBENCH"

// DefaultMaxBytes caps a single run's sequences.
const DefaultMaxBytes int64 = 8 << 30

// Config is the resolved configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Format is the suite report format.
	Format string `mapstructure:"format"`

	MaxBytes int64 `mapstructure:"max_bytes"`

	// DB is the SQLite history path; empty disables history.
	DB string `mapstructure:"db"`

	// MetricsFile receives Prometheus metrics after a suite; empty disables.
	MetricsFile string `mapstructure:"metrics_file"`

	Suite suite.Options `mapstructure:"suite"`
	Cases []CaseConfig  `mapstructure:"cases"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// CaseConfig is a suite case as written in the config file.
type CaseConfig struct {
	Name      string `mapstructure:"name"`
	Size      int    `mapstructure:"size"`
	Transform string `mapstructure:"transform"`
	Strategy  string `mapstructure:"strategy"`
	Layout    string `mapstructure:"layout"`
	AllocMode string `mapstructure:"alloc_mode"`
}

// Case converts c to a suite case.
func (c CaseConfig) Case() (suite.Case, error) {
	s, err := bench.ParseStrategy(c.Strategy)
	if err != nil {
		return suite.Case{}, err
	}
	l, err := bench.ParseLayout(c.Layout)
	if err != nil {
		return suite.Case{}, err
	}
	a, err := bench.ParseAllocMode(c.AllocMode)
	if err != nil {
		return suite.Case{}, err
	}
	return suite.Case{Name: c.Name, Size: c.Size, Transform: c.Transform, Strategy: s, Layout: l, AllocMode: a}, nil
}

// SuiteCases returns the configured cases, or suite.DefaultCases if none
// are configured.
func (c Config) SuiteCases() ([]suite.Case, error) {
	if len(c.Cases) == 0 {
		return suite.DefaultCases(), nil
	}
	out := make([]suite.Case, 0, len(c.Cases))
	for _, cc := range c.Cases {
		sc, err := cc.Case()
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", cc.Name, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// SuiteOptions returns the suite options with the global byte ceiling
// applied when the suite does not set its own.
func (c Config) SuiteOptions() suite.Options {
	o := c.Suite
	if o.MaxBytes == 0 {
		o.MaxBytes = c.MaxBytes
	}
	return o
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"log-format":   "log_format",
	"format":       "format",
	"max-bytes":    "max_bytes",
	"db":           "db",
	"metrics-file": "metrics_file",
	"warmup":       "suite.warmup",
	"repetitions":  "suite.repetitions",
	"verify":       "suite.verify",
}

func setDefaults(v *viper.Viper) {
	d := suite.DefaultOptions()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("format", "table")
	v.SetDefault("max_bytes", DefaultMaxBytes)
	v.SetDefault("db", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("suite.warmup", d.Warmup)
	v.SetDefault("suite.repetitions", d.Repetitions)
	v.SetDefault("suite.verify", d.Verify)
	v.SetDefault("suite.verify_size", d.VerifySize)
	v.SetDefault("suite.max_bytes", 0)
}

// Load resolves the configuration. cfgFile selects an explicit file, which
// must exist; otherwise ./ewbench.yaml is read when present. Flags from fs
// that were set on the command line override every other source.
func Load(cfgFile string, fs *pflag.FlagSet) (Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("ewbench")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log_level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log_format must be text or json, got %q", c.LogFormat))
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		problems = append(problems, err.Error())
	}
	if c.MaxBytes <= 0 {
		problems = append(problems, fmt.Sprintf("max_bytes must be positive, got %d", c.MaxBytes))
	}
	if err := c.SuiteOptions().Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	cases, err := c.SuiteCases()
	if err != nil {
		problems = append(problems, err.Error())
	}
	for _, sc := range cases {
		if err := sc.Validate(); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
