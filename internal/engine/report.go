package engine

import (
	"fmt"
	"time"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/providers/aws/common"
)

// buildSecurityReport assembles the final AuditReport. Findings are kept in
// evaluation order: category, then resource, then check.
func buildSecurityReport(
	profile *common.ProfileConfig,
	categories []models.Category,
	findings []models.Finding,
	warnings []models.Warning,
	generatedAt time.Time,
) *models.AuditReport {
	return &models.AuditReport{
		ReportID:    fmt.Sprintf("audit-%d", generatedAt.UnixNano()),
		GeneratedAt: generatedAt,
		AuditType:   string(AuditTypeSecurity),
		Profile:     profile.ProfileName,
		AccountID:   profile.AccountID,
		Region:      profile.Region,
		Categories:  categories,
		Summary:     computeSummary(findings, warnings),
		Findings:    findings,
		Warnings:    warnings,
	}
}

// computeSummary counts findings by status and MISCONFIG findings by
// severity.
func computeSummary(findings []models.Finding, warnings []models.Warning) models.AuditSummary {
	var s models.AuditSummary
	s.TotalFindings = len(findings)
	s.Warnings = len(warnings)
	for _, f := range findings {
		switch f.Status {
		case models.StatusOK:
			s.OKFindings++
			continue
		case models.StatusUnknown:
			s.UnknownFindings++
			continue
		case models.StatusMisconfig:
			s.MisconfigFindings++
		}
		switch f.Severity {
		case models.SeverityCritical:
			s.CriticalFindings++
		case models.SeverityHigh:
			s.HighFindings++
		case models.SeverityMedium:
			s.MediumFindings++
		case models.SeverityLow:
			s.LowFindings++
		}
	}
	return s
}
