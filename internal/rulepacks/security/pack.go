// Package security provides the misconfiguration audit rule pack.
// The CLI registers New() into a DefaultRuleRegistry before invoking the
// audit engine.
package security

import "github.com/pankaj-dahiya-devops/cloud-audit/internal/rules"

// New returns the default rule pack, one rule per resource category in
// execution order.
func New() []rules.Rule {
	return []rules.Rule{
		rules.S3BucketRule{},      // storage:  public ACL, logging, versioning
		rules.RDSInstanceRule{},   // database: public access, delete protection, backups
		rules.SecurityGroupRule{}, // network:  SSH/MongoDB to 0.0.0.0/0, ::/0 ingress
	}
}
