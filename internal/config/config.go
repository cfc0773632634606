package config

// Config is the top-level application configuration.
// It is loaded from ~/.config/cloud-audit/config.yaml, CLOUDAUDIT_* environment
// variables and command-line flags, in increasing order of precedence.
type Config struct {
	AWS    AWSConfig    `mapstructure:"aws"    json:"aws"`
	Output OutputConfig `mapstructure:"output" json:"output"`

	// PolicyPath is the policy file applied to every scan. Empty means no
	// policy.
	PolicyPath string `mapstructure:"policy" json:"policy"`

	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" json:"log_level"`
}

// AWSConfig holds AWS-specific defaults used when flags are not provided.
type AWSConfig struct {
	// Profile is the shared-config profile. Empty uses the default chain.
	Profile string `mapstructure:"profile" json:"profile"`

	// Region is the single region to audit. Empty uses the profile's
	// region, then eu-north-1.
	Region string `mapstructure:"region" json:"region"`
}

// OutputConfig controls how scan results are rendered.
type OutputConfig struct {
	// Format is one of text, table or json.
	Format string `mapstructure:"format" json:"format"`

	// Color enables ANSI colours in the text reporter.
	Color bool `mapstructure:"color" json:"color"`

	// File, when set, also writes the report to this path: plain text for
	// .txt and .log, JSON otherwise.
	File string `mapstructure:"file" json:"file"`

	// ProblemsOnly hides OK findings in the table format.
	ProblemsOnly bool `mapstructure:"problems_only" json:"problems_only"`
}

// Loader is the interface for reading Config.
type Loader interface {
	// Load reads, merges, and validates the configuration.
	Load() (*Config, error)

	// ConfigPath returns the absolute path to the configuration file.
	ConfigPath() string
}
