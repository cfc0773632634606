// Package awssecurity implements the AWS misconfiguration data collector.
// It lists S3 buckets, RDS instances and EC2 security groups and turns the
// SDK responses into the descriptors defined in internal/models.
//
// SDK defaulting happens here: absent booleans become false and absent
// retention periods become 0, so evaluators never see SDK pointer types.
package awssecurity
