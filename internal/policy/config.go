package policy

// PolicyConfig is the parsed form of a policy file.
//
//	version: 1
//	categories:
//	  database:
//	    enabled: false
//	rules:
//	  LOGGING_DISABLED:
//	    severity: LOW
//	enforcement:
//	  fail_on_severity: HIGH
type PolicyConfig struct {
	Version     int                       `yaml:"version"`
	Categories  map[string]CategoryConfig `yaml:"categories"`
	Rules       map[string]RuleConfig     `yaml:"rules"`
	Enforcement EnforcementConfig         `yaml:"enforcement"`
}

// CategoryConfig switches a whole resource category on or off. A disabled
// category is neither collected nor reported.
type CategoryConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// RuleConfig overrides a single check, keyed by its rule ID.
type RuleConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Severity string `yaml:"severity,omitempty"`
}

// EnforcementConfig decides when a scan exits non-zero.
type EnforcementConfig struct {
	FailOnMisconfig bool   `yaml:"fail_on_misconfig"`
	FailOnSeverity  string `yaml:"fail_on_severity,omitempty"`
}
