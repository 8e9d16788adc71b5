// Package dynamo classifies DynamoDB failures for the repository layer.
package dynamo

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FailureMessage describes a DynamoDB failure in a caller-facing message.
// Write failures, missing-table configuration and connectivity problems are
// all equally unrecoverable by the caller, so they differ only in wording.
func FailureMessage(op string, err error) string {
	var tableErr *types.ResourceNotFoundException
	var txErr *types.TransactionCanceledException
	var condErr *types.ConditionalCheckFailedException
	switch {
	case errors.As(err, &tableErr):
		return fmt.Sprintf("failed to %s: table missing, check config to make sure the table is created: %v", op, err)
	case errors.As(err, &txErr):
		return fmt.Sprintf("failed to %s: transaction was not committed: %v", op, err)
	case errors.As(err, &condErr):
		return fmt.Sprintf("failed to %s: condition check failed: %v", op, err)
	default:
		return fmt.Sprintf("failed to %s: connection or request error, check config (region, table name): %v", op, err)
	}
}
