package awssecurity

import (
	"context"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/providers/aws/common"
)

// SecurityCollector collects raw resource descriptors from one AWS account
// and region. It is passed to the audit engine for evaluation.
//
// Implementations must never apply business logic or produce findings.
// A failing list call is recorded in SecurityData.Errors for its category
// and must not stop the other categories. A failing per-resource attribute
// call is recorded on the attribute itself.
type SecurityCollector interface {
	// Collect gathers the descriptors of a single category into data.
	Collect(
		ctx context.Context,
		category models.Category,
		profile *common.ProfileConfig,
		provider common.AWSClientProvider,
		data *models.SecurityData,
	)
}
