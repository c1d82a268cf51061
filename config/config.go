// Package config loads simd-detect settings from defaults, an optional
// config file, SIMD_DETECT_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/simd-detect/analyzer"
	"github.com/wippyai/simd-detect/errors"
	"github.com/wippyai/simd-detect/report"
)

// EnvPrefix is prepended to upper-cased keys, with dots as underscores:
// SIMD_DETECT_LINE_MODE, SIMD_DETECT_RUNTIME_MEMORY_PAGES.
const EnvPrefix = "SIMD_DETECT"

// Config is the resolved configuration.
type Config struct {
	Variant    string        `mapstructure:"variant"`
	Format     string        `mapstructure:"format"`
	Output     string        `mapstructure:"output"`
	LineMode   string        `mapstructure:"line_mode"`
	LogLevel   string        `mapstructure:"log_level"`
	Runtime    RuntimeConfig `mapstructure:"runtime"`
	MinDensity float64       `mapstructure:"min_density"`
	Top        int           `mapstructure:"top"`
	Lines      int           `mapstructure:"lines"`
	Workers    int           `mapstructure:"workers"`
}

// RuntimeConfig holds byte-buffer host settings.
type RuntimeConfig struct {
	// Memory limit per guest (in pages, 64KB each). 0 means no limit.
	MemoryPages uint32 `mapstructure:"memory_pages"`
}

// flagNames maps config keys to the flags that override them.
var flagNames = map[string]string{
	"variant":              "variant",
	"format":               "format",
	"output":               "output",
	"line_mode":            "line-mode",
	"log_level":            "log-level",
	"min_density":          "min-density",
	"top":                  "top",
	"lines":                "lines",
	"workers":              "workers",
	"runtime.memory_pages": "memory-pages",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("variant", analyzer.DefaultVariant)
	v.SetDefault("format", string(report.FormatJSON))
	v.SetDefault("output", "")
	v.SetDefault("line_mode", string(analyzer.LineModeInstruction))
	v.SetDefault("log_level", "warn")
	v.SetDefault("min_density", 0.0)
	v.SetDefault("top", report.DefaultTop)
	v.SetDefault("lines", 5)
	v.SetDefault("workers", 0)

	v.SetDefault("runtime.memory_pages", 1024) // 64MB
}

// Load resolves the configuration. path may be empty; flags may be nil.
// Only flags named in the key table are bound.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagNames {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "bind flag --"+name)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.New(errors.PhaseConfig, errors.KindIO).
				Cause(err).
				Detail("read config %s", path).
				Build()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return invalid("format", err)
	}
	if _, err := analyzer.ParseLineMode(c.LineMode); err != nil {
		return invalid("line_mode", err)
	}
	if _, err := c.Level(); err != nil {
		return invalid("log_level", err)
	}
	if c.MinDensity < 0 || c.MinDensity > 1 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("min_density").
			Value(c.MinDensity).
			Detail("min_density %v outside [0,1]", c.MinDensity).
			Build()
	}
	for key, n := range map[string]int{"top": c.Top, "lines": c.Lines, "workers": c.Workers} {
		if n < 0 {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path(key).
				Value(n).
				Detail("%s must not be negative", key).
				Build()
		}
	}
	return nil
}

func invalid(key string, cause error) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).Path(key).Cause(cause).Detail("invalid %s", key).Build()
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// ReportFormat returns the parsed report format.
func (c *Config) ReportFormat() report.Format {
	f, _ := report.ParseFormat(c.Format)
	return f
}

// AnalyzerOptions maps the configuration onto analyzer options for path.
func (c *Config) AnalyzerOptions(path string) analyzer.Options {
	return analyzer.Options{
		Variant:    c.Variant,
		Path:       path,
		LineMode:   analyzer.LineMode(c.LineMode),
		MinDensity: c.MinDensity,
		Workers:    c.Workers,
	}
}
