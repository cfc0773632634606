package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CLOUDAUDIT_AWS_REGION.
const EnvPrefix = "CLOUDAUDIT"

// Defaults applied before any file, env or flag source. The region has no
// default here so the AWS profile's own region can apply.
const (
	DefaultFormat   = "text"
	DefaultLogLevel = "warn"
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"profile":       "aws.profile",
	"region":        "aws.region",
	"format":        "output.format",
	"output":        "output.file",
	"problems-only": "output.problems_only",
	"policy":        "policy",
	"log-level":     "log_level",
}

var validFormats = []string{"text", "table", "json"}

// ViperLoader is the production Loader. It layers defaults, the YAML config
// file, CLOUDAUDIT_* environment variables and bound flags using viper.
type ViperLoader struct {
	path     string
	optional bool
	flags    *pflag.FlagSet
}

// NewViperLoader returns a loader reading path. An empty path selects
// DefaultConfigPath, which may be absent. flags may be nil.
func NewViperLoader(path string, flags *pflag.FlagSet) *ViperLoader {
	l := &ViperLoader{path: path, flags: flags}
	if path == "" {
		l.path = DefaultConfigPath()
		l.optional = true
	}
	return l
}

// DefaultConfigPath returns ~/.config/cloud-audit/config.yaml, or "" when
// the home directory cannot be resolved.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cloud-audit", "config.yaml")
}

func (l *ViperLoader) ConfigPath() string { return l.path }

// Load implements Loader.
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.region", "")
	v.SetDefault("output.format", DefaultFormat)
	v.SetDefault("output.color", true)
	v.SetDefault("output.file", "")
	v.SetDefault("output.problems_only", false)
	v.SetDefault("policy", "")
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.path != "" {
		v.SetConfigFile(l.path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !(l.optional && isNotFound(err)) {
			return nil, fmt.Errorf("read config %s: %w", l.path, err)
		}
	}

	if l.flags != nil {
		for name, key := range flagKeys {
			if f := l.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the output format and log level.
func (c *Config) Validate() error {
	c.Output.Format = strings.ToLower(c.Output.Format)
	valid := false
	for _, f := range validFormats {
		if c.Output.Format == f {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("output.format: invalid value %q; valid values: %s", c.Output.Format, strings.Join(validFormats, ", "))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}
