package awssecurity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// collectDBInstances lists every RDS DB instance in the region. Absent
// fields default to their insecure value.
func collectDBInstances(ctx context.Context, client rdsAPIClient) ([]models.DBInstance, error) {
	var instances []models.DBInstance
	paginator := rdssvc.NewDescribeDBInstancesPaginator(client, &rdssvc.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe DB instances: %w", err)
		}
		for _, db := range page.DBInstances {
			instances = append(instances, models.DBInstance{
				Identifier:            aws.ToString(db.DBInstanceIdentifier),
				Engine:                aws.ToString(db.Engine),
				PubliclyAccessible:    aws.ToBool(db.PubliclyAccessible),
				DeletionProtection:    aws.ToBool(db.DeletionProtection),
				BackupRetentionPeriod: int(aws.ToInt32(db.BackupRetentionPeriod)),
			})
		}
	}
	return instances, nil
}
