package policy

import (
	"strings"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// severityRank orders severities for threshold comparison.
var severityRank = map[models.Severity]int{
	models.SeverityCritical: 5,
	models.SeverityHigh:     4,
	models.SeverityMedium:   3,
	models.SeverityLow:      2,
	models.SeverityInfo:     1,
}

// ShouldFail reports whether the scan should exit non-zero. Only MISCONFIG
// findings count; OK and UNKNOWN findings never fail a scan.
//
// It returns true when fail_on_misconfig is set and any MISCONFIG finding
// exists, or when fail_on_severity names a valid severity and a MISCONFIG
// finding is at or above it. An unrecognised fail_on_severity is ignored.
func ShouldFail(findings []models.Finding, cfg *PolicyConfig) bool {
	if cfg == nil {
		return false
	}
	enf := cfg.Enforcement

	threshold, hasThreshold := severityRank[models.Severity(strings.ToUpper(enf.FailOnSeverity))]
	if !enf.FailOnMisconfig && !hasThreshold {
		return false
	}

	for _, f := range findings {
		if f.Status != models.StatusMisconfig {
			continue
		}
		if enf.FailOnMisconfig {
			return true
		}
		if r, ok := severityRank[f.Severity]; ok && r >= threshold {
			return true
		}
	}
	return false
}
