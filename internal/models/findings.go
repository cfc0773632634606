package models

import "time"

// Severity represents the impact level of a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// Status is the outcome of a single check on a single resource.
type Status string

const (
	// StatusOK means the check ran and the resource is configured safely.
	StatusOK Status = "OK"

	// StatusMisconfig means the check ran and found a misconfiguration.
	StatusMisconfig Status = "MISCONFIG"

	// StatusUnknown means the data the check needs could not be retrieved,
	// so no verdict is given either way.
	StatusUnknown Status = "UNKNOWN"
)

// ResourceType identifies the kind of cloud resource a finding refers to.
type ResourceType string

const (
	ResourceS3Bucket      ResourceType = "S3_BUCKET"
	ResourceRDS           ResourceType = "RDS_INSTANCE"
	ResourceSecurityGroup ResourceType = "SECURITY_GROUP"
)

// Category is one of the audited resource families. Categories are audited
// in the order returned by Categories.
type Category string

const (
	CategoryStorage  Category = "storage"
	CategoryDatabase Category = "database"
	CategoryNetwork  Category = "network"
)

// Categories returns the audit categories in execution order.
func Categories() []Category {
	return []Category{CategoryStorage, CategoryDatabase, CategoryNetwork}
}

// Finding is a single reported result for one check on one resource.
// It is the atomic output unit of the rule engine.
type Finding struct {
	ID             string         `json:"id"`
	RuleID         string         `json:"rule_id"`
	ResourceID     string         `json:"resource_id"`
	ResourceName   string         `json:"resource_name,omitempty"`
	ResourceType   ResourceType   `json:"resource_type"`
	Category       Category       `json:"category"`
	Region         string         `json:"region"`
	AccountID      string         `json:"account_id"`
	Profile        string         `json:"profile"`
	Status         Status         `json:"status"`
	Severity       Severity       `json:"severity"`
	Explanation    string         `json:"explanation"`
	Recommendation string         `json:"recommendation,omitempty"`
	DetectedAt     time.Time      `json:"detected_at"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// WarningKind classifies a failure that prevented some findings from being
// produced.
type WarningKind string

const (
	// WarningListUnavailable means the top-level list call for a category
	// failed; no findings exist for that category.
	WarningListUnavailable WarningKind = "RESOURCE_LIST_UNAVAILABLE"

	// WarningMalformedDescriptor means a fetched resource was missing its
	// identifier and was skipped.
	WarningMalformedDescriptor WarningKind = "MALFORMED_DESCRIPTOR"
)

// Warning is a category- or resource-level problem reported inline with the
// findings. Warnings never abort a run.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	Category   Category    `json:"category"`
	ResourceID string      `json:"resource_id,omitempty"`
	Message    string      `json:"message"`
}

// AuditSummary aggregates counts across all findings.
type AuditSummary struct {
	TotalFindings     int `json:"total_findings"`
	OKFindings        int `json:"ok_findings"`
	MisconfigFindings int `json:"misconfig_findings"`
	UnknownFindings   int `json:"unknown_findings"`
	Warnings          int `json:"warnings"`

	// Severity counts cover MISCONFIG findings only.
	CriticalFindings int `json:"critical_findings"`
	HighFindings     int `json:"high_findings"`
	MediumFindings   int `json:"medium_findings"`
	LowFindings      int `json:"low_findings"`
}

// AuditReport is the top-level output of an audit run. Categories lists the
// categories that were audited, in execution order; Findings keep resource
// order within each category.
type AuditReport struct {
	ReportID    string       `json:"report_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	AuditType   string       `json:"audit_type"`
	Profile     string       `json:"profile"`
	AccountID   string       `json:"account_id"`
	Region      string       `json:"region"`
	Categories  []Category   `json:"categories"`
	Summary     AuditSummary `json:"summary"`
	Findings    []Finding    `json:"findings"`
	Warnings    []Warning    `json:"warnings,omitempty"`

	// Resources counts the evaluated descriptors per audited category.
	Resources map[Category]int `json:"resources,omitempty"`
}

// FindingsFor returns the findings of report that belong to category,
// preserving their order.
func (r *AuditReport) FindingsFor(c Category) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

// WarningsFor returns the warnings of report that belong to category.
func (r *AuditReport) WarningsFor(c Category) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Category == c {
			out = append(out, w)
		}
	}
	return out
}
