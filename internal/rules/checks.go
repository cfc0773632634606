package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// Check describes one individual check. Its ID is the RuleID stamped on
// every finding the check produces, whatever the status.
type Check struct {
	ID       string
	Title    string
	Severity models.Severity // severity of a MISCONFIG result

	// Recommendation is attached to MISCONFIG findings only.
	Recommendation string
}

// Storage bucket checks.
var (
	CheckPublicAccess = Check{
		ID:             "PUBLIC_ACCESS",
		Title:          "S3 bucket ACL grants public access",
		Severity:       models.SeverityHigh,
		Recommendation: "Remove AllUsers and AuthenticatedUsers grants from the bucket ACL and enable S3 Block Public Access.",
	}
	CheckLoggingDisabled = Check{
		ID:             "LOGGING_DISABLED",
		Title:          "S3 bucket server access logging disabled",
		Severity:       models.SeverityMedium,
		Recommendation: "Enable server access logging to a dedicated log bucket.",
	}
	CheckVersioningDisabled = Check{
		ID:             "VERSIONING_DISABLED",
		Title:          "S3 bucket versioning disabled",
		Severity:       models.SeverityMedium,
		Recommendation: "Enable bucket versioning so overwritten or deleted objects can be recovered.",
	}
)

// Database instance checks.
var (
	CheckDBPublicAccess = Check{
		ID:             "DB_PUBLIC_ACCESS",
		Title:          "RDS instance publicly accessible",
		Severity:       models.SeverityHigh,
		Recommendation: "Set PubliclyAccessible to false and reach the database through private subnets only.",
	}
	CheckDeletionProtectionDisabled = Check{
		ID:             "DELETION_PROTECTION_DISABLED",
		Title:          "RDS deletion protection disabled",
		Severity:       models.SeverityMedium,
		Recommendation: "Enable deletion protection on production database instances.",
	}
	CheckBackupsDisabled = Check{
		ID:             "BACKUPS_DISABLED",
		Title:          "RDS automated backups disabled",
		Severity:       models.SeverityHigh,
		Recommendation: "Set a backup retention period of at least 7 days.",
	}
)

// Security group checks.
var (
	CheckSSHOpenToWorld = Check{
		ID:             "SSH_OPEN_TO_WORLD",
		Title:          "SSH (22) open to 0.0.0.0/0",
		Severity:       models.SeverityHigh,
		Recommendation: "Restrict SSH access to specific trusted IP ranges or use AWS Systems Manager Session Manager instead.",
	}
	CheckMongoDBOpenToWorld = Check{
		ID:             "MONGODB_OPEN_TO_WORLD",
		Title:          "MongoDB (27017) open to 0.0.0.0/0",
		Severity:       models.SeverityCritical,
		Recommendation: "Remove the public ingress rule; expose MongoDB only to application security groups.",
	}
	CheckIPv6OpenToWorld = Check{
		ID:             "IPV6_OPEN_TO_WORLD",
		Title:          "Ingress rule allows all IPv6 addresses (::/0)",
		Severity:       models.SeverityHigh,
		Recommendation: "Replace ::/0 with the specific IPv6 ranges that need access.",
	}
	CheckIngressOK = Check{
		ID:       "SECURITY_GROUP_INGRESS_OK",
		Title:    "No watched port or IPv6 range open to the internet",
		Severity: models.SeverityInfo,
	}
)

// finding builds a finding for check c on a resource. OK and UNKNOWN results
// carry INFO severity and no recommendation.
func (c Check) finding(status models.Status, rt models.ResourceType, cat models.Category, id, msg string) models.Finding {
	f := models.Finding{
		ID:           fmt.Sprintf("%s-%s", c.ID, id),
		RuleID:       c.ID,
		ResourceID:   id,
		ResourceType: rt,
		Category:     cat,
		Status:       status,
		Severity:     models.SeverityInfo,
		Explanation:  msg,
	}
	if status == models.StatusMisconfig {
		f.Severity = c.Severity
		f.Recommendation = c.Recommendation
	}
	return f
}

// stamp copies run-level attribution from ctx onto every finding.
func stamp(ctx RuleContext, findings []models.Finding) []models.Finding {
	for i := range findings {
		findings[i].AccountID = ctx.AccountID
		findings[i].Profile = ctx.Profile
		if findings[i].Region == "" {
			findings[i].Region = ctx.Region
		}
	}
	return findings
}
