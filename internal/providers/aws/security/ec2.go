package awssecurity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// collectSecurityGroups describes every security group in the region and
// keeps each group's ingress rules in API order.
func collectSecurityGroups(ctx context.Context, client ec2SecurityAPIClient, region string) ([]models.SecurityGroup, error) {
	var groups []models.SecurityGroup
	paginator := ec2svc.NewDescribeSecurityGroupsPaginator(client, &ec2svc.DescribeSecurityGroupsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe security groups in %s: %w", region, err)
		}
		for _, sg := range page.SecurityGroups {
			groups = append(groups, models.SecurityGroup{
				GroupID:      aws.ToString(sg.GroupId),
				GroupName:    aws.ToString(sg.GroupName),
				IngressRules: ingressRules(sg.IpPermissions),
			})
		}
	}
	return groups, nil
}

// ingressRules converts IP permissions to ingress rules. A port range is set
// only when the API returned both bounds.
func ingressRules(perms []ec2types.IpPermission) []models.IngressRule {
	rules := make([]models.IngressRule, 0, len(perms))
	for _, p := range perms {
		rule := models.IngressRule{Protocol: aws.ToString(p.IpProtocol)}
		if p.FromPort != nil && p.ToPort != nil {
			rule.Ports = &models.PortRange{
				From: int(aws.ToInt32(p.FromPort)),
				To:   int(aws.ToInt32(p.ToPort)),
			}
		}
		for _, r := range p.IpRanges {
			rule.IPv4Ranges = append(rule.IPv4Ranges, aws.ToString(r.CidrIp))
		}
		for _, r := range p.Ipv6Ranges {
			rule.IPv6Ranges = append(rule.IPv6Ranges, aws.ToString(r.CidrIpv6))
		}
		rules = append(rules, rule)
	}
	return rules
}
