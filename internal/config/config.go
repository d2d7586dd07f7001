// Package config loads vcdmaker settings from an optional YAML file, VCDM_*
// environment variables and command line flags, in increasing order of
// precedence.
//
package config

import (
	"strings"

	"github.com/db47h/vcd"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment variables overriding settings.
//
const EnvPrefix = "VCDM"

// Config is the top-level configuration.
//
type Config struct {
	TimeUnit    string    `mapstructure:"time_unit"`
	Output      string    `mapstructure:"output"`
	LineCounter string    `mapstructure:"line_counter"`
	Date        string    `mapstructure:"date"`
	Log         LogConfig `mapstructure:"log"`
}

// LogConfig configures the zap logger.
//
type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// FlagKeys maps command line flag names to configuration keys.
//
var FlagKeys = map[string]string{
	"timebase":     "time_unit",
	"output":       "output",
	"line_counter": "line_counter",
	"date":         "date",
	"log_level":    "log.level",
}

// Load reads the configuration. path is the configuration file to read and
// may be empty. Flags from fs that were explicitly set override any other
// setting; fs may be nil.
//
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("time_unit", string(vcd.Microseconds))
	v.SetDefault("output", "out.vcd")
	v.SetDefault("line_counter", "")
	v.SetDefault("date", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.disable_caller", true)
	v.SetDefault("log.disable_stacktrace", true)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	if fs != nil {
		for name, key := range FlagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	if _, err := vcd.ParseTimeUnit(c.TimeUnit); err != nil {
		return err
	}
	if c.Output == "" {
		return errors.New("no output file")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}
