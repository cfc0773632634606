package rules

import (
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// RuleContext carries all collected data for a single audit run.
// It is the sole input to Rule.Evaluate and must contain everything a rule
// needs; rules must never make network calls or read external state.
type RuleContext struct {
	// AccountID is the AWS account being evaluated.
	AccountID string

	// Profile is the AWS profile name for this evaluation run.
	Profile string

	// Region is the region the descriptors were collected from.
	Region string

	// Data holds the validated descriptors. Nil means nothing was collected.
	Data *models.SecurityData

	// CheckEnabled reports whether a check ID may fire. Nil enables every
	// check.
	CheckEnabled func(checkID string) bool
}

func (c RuleContext) checkEnabled(id string) bool {
	return c.CheckEnabled == nil || c.CheckEnabled(id)
}

// Rule evaluates every descriptor of one resource kind.
// Rules must be stateless and safe to call concurrently.
// They must never call the AWS SDK or any external service.
type Rule interface {
	// ID returns the unique, stable identifier for this rule (e.g. "S3_BUCKET").
	ID() string

	// Name returns a short human-readable rule name.
	Name() string

	// Category returns the resource family this rule audits.
	Category() models.Category

	// Checks lists the individual checks the rule may report, in the order
	// their findings are emitted for a single resource.
	Checks() []Check

	// Evaluate inspects the provided context and returns findings in
	// resource order. An empty slice means there was nothing to evaluate.
	Evaluate(ctx RuleContext) []models.Finding
}

// RuleRegistry manages the set of active rules and drives evaluation.
type RuleRegistry interface {
	// Register adds a rule to the registry. Panics on duplicate ID.
	Register(rule Rule)

	// All returns all registered rules in registration order.
	All() []Rule

	// ForCategory returns the registered rules auditing c, in registration order.
	ForCategory(c models.Category) []Rule
}
