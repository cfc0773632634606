package awssecurity

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// Predefined S3 grantee group URIs end in these segments.
const (
	allUsersGroup           = "AllUsers"
	authenticatedUsersGroup = "AuthenticatedUsers"
)

// collectS3Buckets lists all S3 buckets in the account and fetches each
// bucket's ACL grants, logging configuration and versioning status from the
// bucket's own region. Only the list call can fail the category; per-bucket
// failures are recorded on the affected attribute.
func collectS3Buckets(ctx context.Context, client s3APIClient, auditRegion string) ([]models.S3Bucket, error) {
	var buckets []models.S3Bucket
	paginator := s3svc.NewListBucketsPaginator(client, &s3svc.ListBucketsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list S3 buckets: %w", err)
		}
		for _, b := range page.Buckets {
			name := aws.ToString(b.Name)
			if name == "" {
				// Kept so the engine can report it as malformed.
				buckets = append(buckets, models.S3Bucket{})
				continue
			}
			region := bucketRegion(ctx, client, b, auditRegion)
			inRegion := func(o *s3svc.Options) { o.Region = region }
			buckets = append(buckets, models.S3Bucket{
				Name:           name,
				Region:         region,
				Grants:         fetchBucketGrants(ctx, client, name, inRegion),
				LoggingEnabled: fetchBucketLogging(ctx, client, name, inRegion),
				Versioning:     fetchBucketVersioning(ctx, client, name, inRegion),
			})
		}
	}
	return buckets, nil
}

// bucketRegion returns the region hosting b. ListBuckets reports it in
// BucketRegion; when that is empty GetBucketLocation is asked instead. If
// both fail the audit region is used and the attribute calls surface the
// redirect as unavailable.
func bucketRegion(ctx context.Context, client s3APIClient, b s3types.Bucket, auditRegion string) string {
	if r := aws.ToString(b.BucketRegion); r != "" {
		return r
	}
	out, err := client.GetBucketLocation(ctx, &s3svc.GetBucketLocationInput{Bucket: b.Name})
	if err != nil {
		logAttrFailure(ctx, aws.ToString(b.Name), "location", err)
		return auditRegion
	}
	switch out.LocationConstraint {
	case "":
		return "us-east-1"
	case s3types.BucketLocationConstraintEu:
		return "eu-west-1"
	default:
		return string(out.LocationConstraint)
	}
}

func fetchBucketGrants(ctx context.Context, client s3APIClient, name string, optFns ...func(*s3svc.Options)) models.Attr[[]models.BucketGrant] {
	out, err := client.GetBucketAcl(ctx, &s3svc.GetBucketAclInput{Bucket: aws.String(name)}, optFns...)
	if err != nil {
		logAttrFailure(ctx, name, "acl", err)
		return models.Unavailable[[]models.BucketGrant](attrError(err))
	}
	grants := make([]models.BucketGrant, 0, len(out.Grants))
	for _, g := range out.Grants {
		grants = append(grants, models.BucketGrant{
			Scope:      granteeScope(g.Grantee),
			Permission: string(g.Permission),
		})
	}
	return models.Known(grants)
}

// granteeScope maps an ACL grantee to its scope. Only the predefined
// AllUsers and AuthenticatedUsers groups are public.
func granteeScope(g *s3types.Grantee) models.GranteeScope {
	if g == nil {
		return models.GranteeSpecificIdentity
	}
	uri := aws.ToString(g.URI)
	switch {
	case strings.Contains(uri, allUsersGroup):
		return models.GranteeAllUsers
	case strings.Contains(uri, authenticatedUsersGroup):
		return models.GranteeAuthenticatedUsers
	default:
		return models.GranteeSpecificIdentity
	}
}

func fetchBucketLogging(ctx context.Context, client s3APIClient, name string, optFns ...func(*s3svc.Options)) models.Attr[bool] {
	out, err := client.GetBucketLogging(ctx, &s3svc.GetBucketLoggingInput{Bucket: aws.String(name)}, optFns...)
	if err != nil {
		logAttrFailure(ctx, name, "logging", err)
		return models.Unavailable[bool](attrError(err))
	}
	return models.Known(out.LoggingEnabled != nil)
}

func fetchBucketVersioning(ctx context.Context, client s3APIClient, name string, optFns ...func(*s3svc.Options)) models.Attr[models.VersioningStatus] {
	out, err := client.GetBucketVersioning(ctx, &s3svc.GetBucketVersioningInput{Bucket: aws.String(name)}, optFns...)
	if err != nil {
		logAttrFailure(ctx, name, "versioning", err)
		return models.Unavailable[models.VersioningStatus](attrError(err))
	}
	switch out.Status {
	case s3types.BucketVersioningStatusEnabled:
		return models.Known(models.VersioningEnabled)
	case s3types.BucketVersioningStatusSuspended:
		return models.Known(models.VersioningSuspended)
	case "":
		return models.Known(models.VersioningUnset)
	default:
		return models.Malformed[models.VersioningStatus](fmt.Errorf("unexpected versioning status %q", out.Status))
	}
}

func logAttrFailure(ctx context.Context, bucket, attr string, err error) {
	zerolog.Ctx(ctx).Debug().
		Str("bucket", bucket).
		Str("attribute", attr).
		Err(err).
		Msg("bucket attribute unavailable")
}
