package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// RDSInstanceRule audits RDS instances for public accessibility, missing
// deletion protection and disabled automated backups.
type RDSInstanceRule struct{}

func (r RDSInstanceRule) ID() string                { return "RDS_INSTANCE" }
func (r RDSInstanceRule) Name() string              { return "RDS Instance Configuration" }
func (r RDSInstanceRule) Category() models.Category { return models.CategoryDatabase }

func (r RDSInstanceRule) Checks() []Check {
	return []Check{CheckDBPublicAccess, CheckDeletionProtectionDisabled, CheckBackupsDisabled}
}

// Evaluate returns three findings per instance, instances in collection order.
func (r RDSInstanceRule) Evaluate(ctx RuleContext) []models.Finding {
	if ctx.Data == nil {
		return nil
	}
	var findings []models.Finding
	for _, db := range ctx.Data.DBInstances {
		findings = append(findings, EvaluateDBInstance(db)...)
	}
	return stamp(ctx, findings)
}

// EvaluateDBInstance maps one instance descriptor to exactly three findings:
// public accessibility, deletion protection and backup retention. The checks
// are independent of each other.
func EvaluateDBInstance(db models.DBInstance) []models.Finding {
	find := func(c Check, status models.Status, msg string) models.Finding {
		f := c.finding(status, models.ResourceRDS, models.CategoryDatabase, db.Identifier, msg)
		if db.Engine != "" {
			f.Metadata = map[string]any{"engine": db.Engine}
		}
		return f
	}

	var findings []models.Finding
	if db.PubliclyAccessible {
		findings = append(findings, find(CheckDBPublicAccess, models.StatusMisconfig, "DB is publicly accessible"))
	} else {
		findings = append(findings, find(CheckDBPublicAccess, models.StatusOK, "Not publicly accessible"))
	}

	if db.DeletionProtection {
		findings = append(findings, find(CheckDeletionProtectionDisabled, models.StatusOK, "Delete protection is enabled"))
	} else {
		findings = append(findings, find(CheckDeletionProtectionDisabled, models.StatusMisconfig, "Delete protection is DISABLED"))
	}

	if db.BackupRetentionPeriod == 0 {
		findings = append(findings, find(CheckBackupsDisabled, models.StatusMisconfig, "Backups are DISABLED (RetentionPeriod = 0)"))
	} else {
		msg := fmt.Sprintf("Backups enabled (RetentionPeriod = %d days)", db.BackupRetentionPeriod)
		findings = append(findings, find(CheckBackupsDisabled, models.StatusOK, msg))
	}
	return findings
}
