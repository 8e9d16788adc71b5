// Package registrations persists confirmed attendee registrations.
package registrations

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/durianpy/events-backend/internal/models"
	"github.com/durianpy/events-backend/pkg/apperr"
	dynamoutil "github.com/durianpy/events-backend/pkg/dynamo"
)

// Repository handles registration persistence.
type Repository struct {
	client *dynamodb.Client
	table  string
	logger *zap.Logger
	now    func() time.Time
}

// NewRepository creates a registrations repository.
func NewRepository(client *dynamodb.Client, table string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{client: client, table: table, logger: logger, now: time.Now}
}

// Get resolves a registration by event id and registration id. The partition
// is queried and filtered on registrationId, since the sort key is an opaque
// generated id.
func (r *Repository) Get(ctx context.Context, eventID, registrationID string) (*models.Registration, *apperr.Error) {
	keyCond := expression.Key("hashKey").Equal(expression.Value(eventID))
	filter := expression.Name("registrationId").Equal(expression.Value(registrationID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return nil, apperr.Internal("failed to query registration: %v", err)
	}
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		message := dynamoutil.FailureMessage("query registration", err)
		r.logger.Error("query registration", zap.String("event_id", eventID), zap.String("registration_id", registrationID), zap.Error(err))
		return nil, apperr.Internal("%s", message)
	}
	if len(out.Items) == 0 {
		return nil, apperr.NotFound("registration with id %s not found", registrationID)
	}

	var reg models.Registration
	if err := attributevalue.UnmarshalMap(out.Items[0], &reg); err != nil {
		return nil, apperr.Internal("failed to decode registration: %v", err)
	}
	return &reg, nil
}

// Put writes a registration row. Same-key writes overwrite; distinct payment
// confirmations always carry fresh generated keys.
func (r *Repository) Put(ctx context.Context, reg *models.Registration) *apperr.Error {
	item, err := attributevalue.MarshalMap(reg)
	if err != nil {
		return apperr.Internal("failed to encode registration: %v", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		message := dynamoutil.FailureMessage("save registration", err)
		r.logger.Error("save registration", zap.String("range_key", reg.RangeKey), zap.Error(err))
		return apperr.Internal("%s", message)
	}
	r.logger.Info("registration saved", zap.String("registration_id", reg.RegistrationID), zap.String("email", reg.Email))
	return nil
}

// Update applies a partial registration update as a single transactional
// write and refreshes the in-memory copy. updateDate is always restamped.
func (r *Repository) Update(ctx context.Context, reg *models.Registration, patch *models.RegistrationPatch) *apperr.Error {
	updateDate := r.now().UTC().Format(time.RFC3339)
	update := expression.Set(expression.Name("updateDate"), expression.Value(updateDate))
	if patch.CertificateClaimed != nil {
		update = update.Set(expression.Name("certificateClaimed"), expression.Value(*patch.CertificateClaimed))
	}
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return apperr.Internal("failed to update registration: %v", err)
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{{
			Update: &types.Update{
				TableName: aws.String(r.table),
				Key: map[string]types.AttributeValue{
					"hashKey":  &types.AttributeValueMemberS{Value: reg.HashKey},
					"rangeKey": &types.AttributeValueMemberS{Value: reg.RangeKey},
				},
				UpdateExpression:          expr.Update(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
			},
		}},
	})
	if err != nil {
		message := dynamoutil.FailureMessage("update registration", err)
		r.logger.Error("update registration", zap.String("registration_id", reg.RegistrationID), zap.Error(err))
		return apperr.Internal("%s", message)
	}

	reg.UpdateDate = updateDate
	if patch.CertificateClaimed != nil {
		reg.CertificateClaimed = *patch.CertificateClaimed
	}
	return nil
}
