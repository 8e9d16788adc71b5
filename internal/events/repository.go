// Package events resolves event references for the evaluation workflow.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/durianpy/events-backend/internal/models"
	"github.com/durianpy/events-backend/pkg/apperr"
	dynamoutil "github.com/durianpy/events-backend/pkg/dynamo"
)

const cacheTTL = 5 * time.Minute

// Repository reads events from DynamoDB with an optional Redis read-through
// cache. Events are checked on every evaluation operation and change rarely.
type Repository struct {
	client *dynamodb.Client
	cache  *goredis.Client // nil disables caching
	table  string
	logger *zap.Logger
}

// NewRepository creates an events repository. cache may be nil.
func NewRepository(client *dynamodb.Client, cache *goredis.Client, table string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{client: client, cache: cache, table: table, logger: logger}
}

// Get resolves an event by id. Returns not-found when no row exists for the
// partition key.
func (r *Repository) Get(ctx context.Context, eventID string) (*models.Event, *apperr.Error) {
	if ev := r.fromCache(ctx, eventID); ev != nil {
		return ev, nil
	}

	keyCond := expression.Key("hashKey").Equal(expression.Value(eventID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperr.Internal("failed to query event: %v", err)
	}
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		message := dynamoutil.FailureMessage("query event", err)
		r.logger.Error("query event", zap.String("event_id", eventID), zap.Error(err))
		return nil, apperr.Internal("%s", message)
	}
	if len(out.Items) == 0 {
		return nil, apperr.NotFound("event with id %s not found", eventID)
	}

	var event models.Event
	if err := attributevalue.UnmarshalMap(out.Items[0], &event); err != nil {
		return nil, apperr.Internal("failed to decode event: %v", err)
	}
	r.toCache(ctx, eventID, &event)
	return &event, nil
}

func (r *Repository) fromCache(ctx context.Context, eventID string) *models.Event {
	if r.cache == nil {
		return nil
	}
	raw, err := r.cache.Get(ctx, cacheKey(eventID)).Bytes()
	if err != nil {
		return nil
	}
	var event models.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil
	}
	return &event
}

func (r *Repository) toCache(ctx context.Context, eventID string, event *models.Event) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(eventID), raw, cacheTTL).Err(); err != nil {
		r.logger.Warn("cache event", zap.String("event_id", eventID), zap.Error(err))
	}
}

func cacheKey(eventID string) string { return "event:" + eventID }
