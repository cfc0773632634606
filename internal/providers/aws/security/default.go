package awssecurity

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/providers/aws/common"
)

// DefaultSecurityCollector is the production SecurityCollector.
// S3 is listed once per account and each bucket is read in its own region;
// RDS instances and security groups are collected in the profile's audit
// region.
type DefaultSecurityCollector struct {
	factory secClientFactory
}

// NewDefaultSecurityCollector returns a DefaultSecurityCollector wired to
// production AWS SDK clients.
func NewDefaultSecurityCollector() *DefaultSecurityCollector {
	return &DefaultSecurityCollector{factory: newDefaultSecClients}
}

// NewDefaultSecurityCollectorWithFactory returns a DefaultSecurityCollector
// that uses the supplied factory, allowing tests to inject fake clients.
func NewDefaultSecurityCollectorWithFactory(f secClientFactory) *DefaultSecurityCollector {
	return &DefaultSecurityCollector{factory: f}
}

// Collect gathers one category into data. A list failure is stored in
// data.Errors as a *models.ListUnavailableError.
func (c *DefaultSecurityCollector) Collect(
	ctx context.Context,
	category models.Category,
	profile *common.ProfileConfig,
	provider common.AWSClientProvider,
	data *models.SecurityData,
) {
	log := zerolog.Ctx(ctx).With().Str("category", string(category)).Logger()
	clients := c.factory(provider.ConfigForRegion(profile, profile.Region))

	var err error
	switch category {
	case models.CategoryStorage:
		data.Buckets, err = collectS3Buckets(log.WithContext(ctx), clients.S3, profile.Region)
	case models.CategoryDatabase:
		data.DBInstances, err = collectDBInstances(ctx, clients.RDS)
	case models.CategoryNetwork:
		data.SecurityGroups, err = collectSecurityGroups(ctx, clients.EC2, profile.Region)
	default:
		log.Warn().Msg("unknown category, nothing collected")
		return
	}

	if err != nil {
		log.Warn().Err(err).Msg("resource list unavailable")
		if data.Errors == nil {
			data.Errors = make(map[models.Category]error)
		}
		data.Errors[category] = &models.ListUnavailableError{Category: category, Err: err}
		return
	}
	log.Debug().Msg("category collected")
}
