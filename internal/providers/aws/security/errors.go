package awssecurity

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// attrError shortens an SDK error to its API error code and message when
// one is available, so UNKNOWN findings read "AccessDenied: ..." rather than
// the full operation error chain.
func attrError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return fmt.Errorf("%s: %s", apiErr.ErrorCode(), msg)
		}
		return errors.New(apiErr.ErrorCode())
	}
	return err
}
