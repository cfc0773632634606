package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// DefaultRuleRegistry is a simple, ordered, in-memory registry.
// Rules are evaluated in registration order.
// Register panics on duplicate rule IDs to catch wiring mistakes at startup.
type DefaultRuleRegistry struct {
	rules []Rule
	index map[string]struct{}
}

// NewDefaultRuleRegistry returns an empty registry ready for rule registration.
func NewDefaultRuleRegistry() *DefaultRuleRegistry {
	return &DefaultRuleRegistry{
		index: make(map[string]struct{}),
	}
}

// Register adds rule to the registry. Panics if the same ID is registered twice.
func (r *DefaultRuleRegistry) Register(rule Rule) {
	if _, exists := r.index[rule.ID()]; exists {
		panic(fmt.Sprintf("duplicate rule ID: %q", rule.ID()))
	}
	r.rules = append(r.rules, rule)
	r.index[rule.ID()] = struct{}{}
}

// All returns all registered rules in registration order.
func (r *DefaultRuleRegistry) All() []Rule {
	return r.rules
}

// ForCategory returns the rules registered for c in registration order.
func (r *DefaultRuleRegistry) ForCategory(c models.Category) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.Category() == c {
			out = append(out, rule)
		}
	}
	return out
}

// CheckIDs returns the IDs of every check reported by the registered rules.
// Policy validation uses it as the set of known rule IDs.
func CheckIDs(reg RuleRegistry) []string {
	var ids []string
	for _, rule := range reg.All() {
		for _, c := range rule.Checks() {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
