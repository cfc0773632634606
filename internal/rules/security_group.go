package rules

import (
	"fmt"
	"slices"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

const (
	anyIPv4 = "0.0.0.0/0"
	anyIPv6 = "::/0"
)

// watchedPort is a port the security group rule checks for exposure to
// 0.0.0.0/0.
type watchedPort struct {
	port  int
	label string
	check Check
}

// watchedPorts is fixed: SSH for administrative access and MongoDB for
// database exposure.
var watchedPorts = []watchedPort{
	{port: 22, label: "SSH", check: CheckSSHOpenToWorld},
	{port: 27017, label: "MongoDB", check: CheckMongoDBOpenToWorld},
}

// SecurityGroupRule flags EC2 security groups whose ingress rules expose a
// watched port to 0.0.0.0/0 or allow any IPv6 source.
type SecurityGroupRule struct{}

func (r SecurityGroupRule) ID() string                { return "SECURITY_GROUP" }
func (r SecurityGroupRule) Name() string              { return "Security Group Ingress Exposure" }
func (r SecurityGroupRule) Category() models.Category { return models.CategoryNetwork }

func (r SecurityGroupRule) Checks() []Check {
	return []Check{CheckSSHOpenToWorld, CheckMongoDBOpenToWorld, CheckIPv6OpenToWorld, CheckIngressOK}
}

// Evaluate returns the findings of every group, groups in collection order.
func (r SecurityGroupRule) Evaluate(ctx RuleContext) []models.Finding {
	if ctx.Data == nil {
		return nil
	}
	var findings []models.Finding
	for _, sg := range ctx.Data.SecurityGroups {
		findings = append(findings, evaluateSecurityGroup(sg, ctx.checkEnabled)...)
	}
	return stamp(ctx, findings)
}

// EvaluateSecurityGroup walks the ingress rules of sg in order and returns
// one MISCONFIG finding per watched port exposed to 0.0.0.0/0 and one per
// rule allowing ::/0. When nothing fires anywhere in the group, a single OK
// finding is returned instead.
//
// Watched ports are only checked on rules that carry a port range. A rule
// without one (all traffic) is not matched against watched ports; only its
// IPv6 ranges are inspected.
func EvaluateSecurityGroup(sg models.SecurityGroup) []models.Finding {
	return evaluateSecurityGroup(sg, func(string) bool { return true })
}

// evaluateSecurityGroup skips checks that enabled rejects, so a group whose
// only exposures are disabled still gets its OK finding.
func evaluateSecurityGroup(sg models.SecurityGroup, enabled func(string) bool) []models.Finding {
	var findings []models.Finding
	for i, rule := range sg.IngressRules {
		if rule.Ports != nil && slices.Contains(rule.IPv4Ranges, anyIPv4) {
			for _, wp := range watchedPorts {
				if !enabled(wp.check.ID) || !rule.Ports.Contains(wp.port) {
					continue
				}
				msg := fmt.Sprintf("%s (%d) is open to the world (%s)", wp.label, wp.port, anyIPv4)
				findings = append(findings, groupFinding(wp.check, sg, i, msg, map[string]any{
					"port":      wp.port,
					"open_cidr": anyIPv4,
				}))
			}
		}
		if enabled(CheckIPv6OpenToWorld.ID) && slices.Contains(rule.IPv6Ranges, anyIPv6) {
			msg := fmt.Sprintf("Rule allows all IPv6 addresses (%s)", anyIPv6)
			findings = append(findings, groupFinding(CheckIPv6OpenToWorld, sg, i, msg, map[string]any{
				"open_cidr": anyIPv6,
			}))
		}
	}
	if len(findings) > 0 {
		return findings
	}
	f := CheckIngressOK.finding(models.StatusOK, models.ResourceSecurityGroup, models.CategoryNetwork,
		sg.GroupID, "No obvious SSH/MongoDB public access issues found.")
	f.ResourceName = sg.GroupName
	return []models.Finding{f}
}

func groupFinding(c Check, sg models.SecurityGroup, ruleIndex int, msg string, meta map[string]any) models.Finding {
	f := c.finding(models.StatusMisconfig, models.ResourceSecurityGroup, models.CategoryNetwork, sg.GroupID, msg)
	// A group can trip the same check on several rules.
	f.ID = fmt.Sprintf("%s-%s-%d", c.ID, sg.GroupID, ruleIndex)
	f.ResourceName = sg.GroupName
	meta["rule_index"] = ruleIndex
	f.Metadata = meta
	return f
}
