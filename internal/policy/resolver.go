package policy

import (
	"strings"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// CategoryEnabled reports whether category c should be audited. Categories
// are enabled unless the policy explicitly disables them.
func CategoryEnabled(cfg *PolicyConfig, c models.Category) bool {
	if cfg == nil {
		return true
	}
	cc, ok := cfg.Categories[string(c)]
	if !ok || cc.Enabled == nil {
		return true
	}
	return *cc.Enabled
}

// RuleEnabled reports whether findings with the given rule ID are kept.
// Rules are enabled unless the policy explicitly disables them.
func RuleEnabled(cfg *PolicyConfig, ruleID string) bool {
	if cfg == nil {
		return true
	}
	rc, ok := cfg.Rules[ruleID]
	if !ok || rc.Enabled == nil {
		return true
	}
	return *rc.Enabled
}

// ApplyPolicy drops findings of disabled categories and rules and applies
// severity overrides. Overrides only touch MISCONFIG findings; OK and
// UNKNOWN findings stay informational. Order is preserved.
func ApplyPolicy(findings []models.Finding, cfg *PolicyConfig) []models.Finding {
	if cfg == nil {
		return findings
	}

	result := make([]models.Finding, 0, len(findings))

	for _, f := range findings {
		if !CategoryEnabled(cfg, f.Category) {
			continue
		}

		if !RuleEnabled(cfg, f.RuleID) {
			continue
		}
		ruleCfg, hasRule := cfg.Rules[f.RuleID]

		// Severity override
		if hasRule && ruleCfg.Severity != "" && f.Status == models.StatusMisconfig {
			f.Severity = models.Severity(strings.ToUpper(ruleCfg.Severity))
		}

		result = append(result, f)
	}

	return result
}
