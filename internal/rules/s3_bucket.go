package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// S3BucketRule audits S3 buckets for public ACL grants, disabled server
// access logging and disabled versioning.
type S3BucketRule struct{}

func (r S3BucketRule) ID() string                { return "S3_BUCKET" }
func (r S3BucketRule) Name() string              { return "S3 Bucket Configuration" }
func (r S3BucketRule) Category() models.Category { return models.CategoryStorage }

func (r S3BucketRule) Checks() []Check {
	return []Check{CheckPublicAccess, CheckLoggingDisabled, CheckVersioningDisabled}
}

// Evaluate returns three findings per bucket, buckets in collection order.
func (r S3BucketRule) Evaluate(ctx RuleContext) []models.Finding {
	if ctx.Data == nil {
		return nil
	}
	var findings []models.Finding
	for _, b := range ctx.Data.Buckets {
		findings = append(findings, EvaluateBucket(b)...)
	}
	return stamp(ctx, findings)
}

// EvaluateBucket maps one bucket descriptor to exactly three findings:
// public access, logging and versioning, in that order. Each check reads
// only its own attribute; an attribute that could not be fetched yields an
// UNKNOWN finding for that check alone.
func EvaluateBucket(b models.S3Bucket) []models.Finding {
	findings := []models.Finding{
		bucketPublicAccess(b),
		bucketLogging(b),
		bucketVersioning(b),
	}
	for i := range findings {
		findings[i].Region = b.Region
	}
	return findings
}

func bucketFinding(c Check, status models.Status, b models.S3Bucket, msg string) models.Finding {
	return c.finding(status, models.ResourceS3Bucket, models.CategoryStorage, b.Name, msg)
}

func bucketPublicAccess(b models.S3Bucket) models.Finding {
	c := CheckPublicAccess
	if !b.Grants.OK() {
		return bucketFinding(c, models.StatusUnknown, b, unknownMessage("public access", b.Grants.Reason))
	}
	scope, public := publicGrant(b.Grants.Value)
	if !public {
		return bucketFinding(c, models.StatusOK, b, "Bucket is not publicly accessible")
	}
	f := bucketFinding(c, models.StatusMisconfig, b, "Bucket is publicly accessible")
	f.Metadata = map[string]any{"grantee_scope": string(scope)}
	return f
}

// publicGrant returns the first grant scope that opens the bucket beyond
// specific identities.
func publicGrant(grants []models.BucketGrant) (models.GranteeScope, bool) {
	for _, g := range grants {
		if g.Scope == models.GranteeAllUsers || g.Scope == models.GranteeAuthenticatedUsers {
			return g.Scope, true
		}
	}
	return "", false
}

func bucketLogging(b models.S3Bucket) models.Finding {
	c := CheckLoggingDisabled
	switch {
	case !b.LoggingEnabled.OK():
		return bucketFinding(c, models.StatusUnknown, b, unknownMessage("logging status", b.LoggingEnabled.Reason))
	case b.LoggingEnabled.Value:
		return bucketFinding(c, models.StatusOK, b, "Logging is enabled")
	default:
		return bucketFinding(c, models.StatusMisconfig, b, "Logging is DISABLED")
	}
}

func bucketVersioning(b models.S3Bucket) models.Finding {
	c := CheckVersioningDisabled
	switch {
	case !b.Versioning.OK():
		return bucketFinding(c, models.StatusUnknown, b, unknownMessage("versioning status", b.Versioning.Reason))
	case b.Versioning.Value == models.VersioningEnabled:
		return bucketFinding(c, models.StatusOK, b, "Versioning is enabled")
	default:
		f := bucketFinding(c, models.StatusMisconfig, b, "Versioning is DISABLED")
		f.Metadata = map[string]any{"versioning_status": string(b.Versioning.Value)}
		return f
	}
}

func unknownMessage(what, reason string) string {
	if reason == "" {
		return fmt.Sprintf("Could not determine %s", what)
	}
	return fmt.Sprintf("Could not determine %s: %s", what, reason)
}
