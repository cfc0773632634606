package policy

import (
	"fmt"
	"strings"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// validSeverities is the set of allowed severity strings (upper-case canonical form).
var validSeverities = map[string]struct{}{
	"CRITICAL": {},
	"HIGH":     {},
	"MEDIUM":   {},
	"LOW":      {},
	"INFO":     {},
}

// Validate checks cfg for semantic correctness and returns all validation errors
// found. An empty slice means the config is valid.
//
// Checks performed:
//   - version must be 1
//   - category names must be storage, database or network
//   - rule IDs must appear in availableRuleIDs
//   - rule severity overrides must be valid severity values if set
//   - enforcement fail_on_severity must be a valid severity value if set
//
// All errors are collected before returning; Validate never stops at the first error.
func Validate(cfg *PolicyConfig, availableRuleIDs []string) []error {
	if cfg == nil {
		return []error{fmt.Errorf("policy config is nil")}
	}

	knownIDs := make(map[string]struct{}, len(availableRuleIDs))
	for _, id := range availableRuleIDs {
		knownIDs[id] = struct{}{}
	}

	validCategories := make(map[string]struct{})
	var categoryNames []string
	for _, c := range models.Categories() {
		validCategories[string(c)] = struct{}{}
		categoryNames = append(categoryNames, string(c))
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, fmt.Errorf("version: unsupported value %d; must be 1", cfg.Version))
	}

	for name := range cfg.Categories {
		if _, ok := validCategories[name]; !ok {
			errs = append(errs, fmt.Errorf("categories.%s: unknown category; valid values: %s", name, strings.Join(categoryNames, ", ")))
		}
	}

	for ruleID, rcfg := range cfg.Rules {
		if _, ok := knownIDs[ruleID]; !ok {
			errs = append(errs, fmt.Errorf("rules.%s: unknown rule ID", ruleID))
		}
		if rcfg.Severity != "" {
			if _, ok := validSeverities[strings.ToUpper(rcfg.Severity)]; !ok {
				errs = append(errs, fmt.Errorf("rules.%s.severity: invalid value %q; valid values: CRITICAL, HIGH, MEDIUM, LOW, INFO", ruleID, rcfg.Severity))
			}
		}
	}

	if s := cfg.Enforcement.FailOnSeverity; s != "" {
		if _, ok := validSeverities[strings.ToUpper(s)]; !ok {
			errs = append(errs, fmt.Errorf("enforcement.fail_on_severity: invalid value %q; valid values: CRITICAL, HIGH, MEDIUM, LOW, INFO", s))
		}
	}

	return errs
}
