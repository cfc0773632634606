package engine

import (
	"context"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// AuditType identifies the category of audit to run.
type AuditType string

const (
	AuditTypeSecurity AuditType = "security"
)

// ReportFormat controls the CLI output format.
type ReportFormat string

const (
	ReportFormatText  ReportFormat = "text"
	ReportFormatTable ReportFormat = "table"
	ReportFormatJSON  ReportFormat = "json"
)

// CategoryResult is the outcome of auditing one category. It is handed to
// AuditOptions.OnCategory as soon as the category is done.
type CategoryResult struct {
	Category models.Category
	// Resources is the number of descriptors that reached the rules.
	Resources int
	Findings  []models.Finding
	Warnings  []models.Warning
}

// AuditOptions configures a single audit run.
// It is the sole input to Engine.RunAudit.
type AuditOptions struct {
	// AuditType selects the audit module.
	AuditType AuditType

	// Profile is the named AWS profile to use. Empty means the default profile.
	Profile string

	// Region is the single AWS region to audit. Empty falls back to the
	// profile's configured region, then eu-north-1.
	Region string

	// OnCategory, when set, is called after each category is collected and
	// evaluated, in execution order. Streaming reporters hook in here.
	OnCategory func(CategoryResult)
}

// Engine is the central orchestration interface.
// It coordinates provider collection, rule evaluation, and report assembly,
// returning a fully populated AuditReport.
//
// Engine must not call AWS SDK clients directly; it delegates to the
// appropriate provider and rule interfaces.
type Engine interface {
	RunAudit(ctx context.Context, opts AuditOptions) (*models.AuditReport, error)
}
