package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/policy"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/providers/aws/common"
	awssecurity "github.com/pankaj-dahiya-devops/cloud-audit/internal/providers/aws/security"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/rules"
)

// AWSSecurityEngine implements Engine for AuditTypeSecurity.
// It audits storage, then database, then network, each category collected
// and evaluated before the next begins. It never calls AWS SDK clients
// directly; all calls are delegated to the SecurityCollector and RuleRegistry.
type AWSSecurityEngine struct {
	provider  common.AWSClientProvider
	collector awssecurity.SecurityCollector
	registry  rules.RuleRegistry
	policy    *policy.PolicyConfig
	now       func() time.Time
}

// NewAWSSecurityEngine constructs an AWSSecurityEngine wired to the
// supplied provider, security collector, rule registry and optional policy.
func NewAWSSecurityEngine(
	provider common.AWSClientProvider,
	collector awssecurity.SecurityCollector,
	registry rules.RuleRegistry,
	policyCfg *policy.PolicyConfig,
) *AWSSecurityEngine {
	return &AWSSecurityEngine{
		provider:  provider,
		collector: collector,
		registry:  registry,
		policy:    policyCfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RunAudit implements Engine. Only AuditTypeSecurity is accepted.
//
// A category whose list call failed contributes a warning instead of
// findings; the remaining categories still run. Only a profile load failure
// or context cancellation returns an error.
func (e *AWSSecurityEngine) RunAudit(ctx context.Context, opts AuditOptions) (*models.AuditReport, error) {
	if opts.AuditType != AuditTypeSecurity {
		return nil, fmt.Errorf("unsupported audit type: %q", opts.AuditType)
	}

	profile, err := e.provider.LoadProfile(ctx, opts.Profile, opts.Region)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", opts.Profile, err)
	}

	log := zerolog.Ctx(ctx).With().
		Str("profile", profile.ProfileName).
		Str("region", profile.Region).
		Logger()
	ctx = log.WithContext(ctx)

	detectedAt := e.now()
	data := &models.SecurityData{}
	rctx := rules.RuleContext{
		AccountID:    profile.AccountID,
		Profile:      profile.ProfileName,
		Region:       profile.Region,
		Data:         data,
		CheckEnabled: e.checkEnabled,
	}

	var (
		audited  []models.Category
		findings []models.Finding
		warnings []models.Warning
	)
	resources := make(map[models.Category]int)
	for _, c := range models.Categories() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("audit interrupted before %s: %w", c, err)
		}
		if !policy.CategoryEnabled(e.policy, c) {
			log.Debug().Str("category", string(c)).Msg("category disabled by policy")
			continue
		}
		audited = append(audited, c)

		log.Debug().Str("category", string(c)).Msg("category started")
		e.collector.Collect(ctx, c, profile, e.provider, data)
		res := e.evaluateCategory(c, rctx, detectedAt)
		log.Debug().
			Str("category", string(c)).
			Int("resources", res.Resources).
			Int("findings", len(res.Findings)).
			Int("warnings", len(res.Warnings)).
			Msg("category finished")

		if opts.OnCategory != nil {
			opts.OnCategory(res)
		}
		resources[c] = res.Resources
		findings = append(findings, res.Findings...)
		warnings = append(warnings, res.Warnings...)
	}

	report := buildSecurityReport(profile, audited, findings, warnings, detectedAt)
	report.Resources = resources
	return report, nil
}

func (e *AWSSecurityEngine) checkEnabled(id string) bool {
	return policy.RuleEnabled(e.policy, id)
}

// evaluateCategory turns the collected descriptors of c into findings.
// Descriptors without an identifier are dropped with a warning before any
// rule sees them.
func (e *AWSSecurityEngine) evaluateCategory(
	c models.Category,
	rctx rules.RuleContext,
	detectedAt time.Time,
) CategoryResult {
	res := CategoryResult{Category: c}
	data := rctx.Data

	if err := data.ListError(c); err != nil {
		res.Warnings = append(res.Warnings, models.Warning{
			Kind:     models.WarningListUnavailable,
			Category: c,
			Message:  err.Error(),
		})
		return res
	}

	res.Warnings = dropMalformed(c, data)
	res.Resources = data.Count(c)

	for _, r := range e.registry.ForCategory(c) {
		res.Findings = append(res.Findings, r.Evaluate(rctx)...)
	}
	for i := range res.Findings {
		res.Findings[i].DetectedAt = detectedAt
	}
	res.Findings = policy.ApplyPolicy(res.Findings, e.policy)
	return res
}

// dropMalformed removes descriptors of category c that fail validation and
// returns one warning per removed descriptor. Surviving descriptors keep
// their order.
func dropMalformed(c models.Category, data *models.SecurityData) []models.Warning {
	var warnings []models.Warning
	warn := func(pos int, err error) {
		warnings = append(warnings, models.Warning{
			Kind:     models.WarningMalformedDescriptor,
			Category: c,
			Message:  fmt.Sprintf("skipped resource #%d: %v", pos+1, err),
		})
	}

	switch c {
	case models.CategoryStorage:
		data.Buckets = keepValid(data.Buckets, models.S3Bucket.Validate, warn)
	case models.CategoryDatabase:
		data.DBInstances = keepValid(data.DBInstances, models.DBInstance.Validate, warn)
	case models.CategoryNetwork:
		data.SecurityGroups = keepValid(data.SecurityGroups, models.SecurityGroup.Validate, warn)
	}
	return warnings
}

func keepValid[T any](items []T, validate func(T) error, warn func(int, error)) []T {
	valid := items[:0:0]
	for i, it := range items {
		if err := validate(it); err != nil {
			warn(i, err)
			continue
		}
		valid = append(valid, it)
	}
	return valid
}
