package evaluations

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/durianpy/events-backend/internal/models"
	"github.com/durianpy/events-backend/pkg/apperr"
	dynamoutil "github.com/durianpy/events-backend/pkg/dynamo"
)

// keyMatch selects how the evaluation range key is matched in a query.
type keyMatch int

const (
	matchPartition keyMatch = iota // partition key only
	matchPrefix                    // sort-key prefix "{registrationId}#"
	matchExact                     // exact composite key
)

// rangeKeyMatch decides the key-matching mode from the optional filters.
func rangeKeyMatch(registrationID, question string) (keyMatch, string) {
	switch {
	case registrationID == "":
		return matchPartition, ""
	case question == "":
		return matchPrefix, registrationID + "#"
	default:
		return matchExact, models.EvaluationRangeKey(registrationID, question)
	}
}

// Repository handles evaluation persistence.
type Repository struct {
	client        *dynamodb.Client
	table         string
	questionIndex string // LSI over (hashKey, question)
	actor         string
	logger        *zap.Logger
	now           func() time.Time
	newID         func() string
}

// NewRepository creates an evaluations repository. actor is stamped on
// createdBy/updatedBy.
func NewRepository(client *dynamodb.Client, table, questionIndex, actor string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		client:        client,
		table:         table,
		questionIndex: questionIndex,
		actor:         actor,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Store persists each submitted entry under its own question. All entries
// start in DRAFT with a fresh entry id and audit stamps.
func (r *Repository) Store(ctx context.Context, eventID, registrationID string, entries []models.EvaluationSubmission) ([]models.Evaluation, *apperr.Error) {
	currentDate := r.now().UTC().Format(time.RFC3339)
	stored := make([]models.Evaluation, 0, len(entries))
	for _, in := range entries {
		row := models.Evaluation{
			HashKey:        eventID,
			RangeKey:       models.EvaluationRangeKey(registrationID, in.Question),
			EntryID:        r.newID(),
			EventID:        eventID,
			RegistrationID: registrationID,
			Question:       in.Question,
			Answer:         in.Answer,
			Remarks:        in.Remarks,
			Status:         models.EvaluationStatusDraft,
			CreateDate:     currentDate,
			UpdateDate:     currentDate,
			CreatedBy:      r.actor,
			UpdatedBy:      r.actor,
		}
		item, err := attributevalue.MarshalMap(row)
		if err != nil {
			return nil, apperr.Internal("failed to encode evaluation: %v", err)
		}
		_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.table),
			Item:      item,
		})
		if err != nil {
			message := dynamoutil.FailureMessage("save evaluation", err)
			r.logger.Error("save evaluation", zap.String("range_key", row.RangeKey), zap.Error(err))
			return nil, apperr.Internal("%s", message)
		}
		stored = append(stored, row)
	}
	r.logger.Info("evaluations saved", zap.String("event_id", eventID), zap.String("registration_id", registrationID), zap.Int("count", len(stored)))
	return stored, nil
}

// Query lists evaluations by the optional filters. An eventID selects the
// partition; registrationID narrows by sort-key prefix; both narrow to the
// exact composite key. Without an eventID the whole table is scanned, as a
// last resort. An empty result is reported as not-found, never as success.
func (r *Repository) Query(ctx context.Context, eventID, registrationID, question string) ([]models.Evaluation, *apperr.Error) {
	var entries []models.Evaluation
	if eventID == "" {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.table)})
		if err != nil {
			message := dynamoutil.FailureMessage("scan evaluations", err)
			r.logger.Error("scan evaluations", zap.Error(err))
			return nil, apperr.Internal("%s", message)
		}
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
			return nil, apperr.Internal("failed to decode evaluations: %v", err)
		}
	} else {
		keyCond := expression.Key("hashKey").Equal(expression.Value(eventID))
		mode, sortKey := rangeKeyMatch(registrationID, question)
		switch mode {
		case matchPrefix:
			keyCond = keyCond.And(expression.Key("rangeKey").BeginsWith(sortKey))
		case matchExact:
			keyCond = keyCond.And(expression.Key("rangeKey").Equal(expression.Value(sortKey)))
		}
		expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
		if err != nil {
			return nil, apperr.Internal("failed to query evaluations: %v", err)
		}
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.table),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		if err != nil {
			message := dynamoutil.FailureMessage("query evaluations", err)
			r.logger.Error("query evaluations", zap.String("event_id", eventID), zap.Error(err))
			return nil, apperr.Internal("%s", message)
		}
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
			return nil, apperr.Internal("failed to decode evaluations: %v", err)
		}
	}

	if len(entries) == 0 {
		if eventID != "" && registrationID != "" && question != "" {
			return nil, apperr.NotFound("evaluation with id %s, %s not found", eventID, models.EvaluationRangeKey(registrationID, question))
		}
		return nil, apperr.NotFound("no evaluations found")
	}
	return entries, nil
}

// QueryByQuestion lists every registrant's answer to one question across an
// event, via the question LSI.
func (r *Repository) QueryByQuestion(ctx context.Context, eventID, question string) ([]models.Evaluation, *apperr.Error) {
	keyCond := expression.Key("hashKey").Equal(expression.Value(eventID)).
		And(expression.Key("question").Equal(expression.Value(question)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperr.Internal("failed to query evaluations by question: %v", err)
	}
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(r.questionIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		message := dynamoutil.FailureMessage("query evaluations by question", err)
		r.logger.Error("query evaluations by question", zap.String("event_id", eventID), zap.String("question", question), zap.Error(err))
		return nil, apperr.Internal("%s", message)
	}

	var entries []models.Evaluation
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
		return nil, apperr.Internal("failed to decode evaluations: %v", err)
	}
	if len(entries) == 0 {
		return nil, apperr.NotFound("no evaluations found for event %s and question %s", eventID, question)
	}
	return entries, nil
}

// Update applies a diff-based partial update as a single transactional write
// and refreshes the in-memory copy. Returns false with no write when no patch
// field differs from stored state. A committed write always restamps
// updateDate and updatedBy, even when only one unrelated field changed.
func (r *Repository) Update(ctx context.Context, eval *models.Evaluation, patch *models.EvaluationPatch) (bool, *apperr.Error) {
	changes := diff(eval, patch)
	if len(changes) == 0 {
		return false, nil
	}

	updateDate := r.now().UTC().Format(time.RFC3339)
	update := expression.Set(expression.Name("updateDate"), expression.Value(updateDate)).
		Set(expression.Name("updatedBy"), expression.Value(r.actor))
	for _, ch := range changes {
		update = update.Set(expression.Name(ch.name), expression.Value(ch.value))
	}
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return false, apperr.Internal("failed to update evaluation: %v", err)
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{{
			Update: &types.Update{
				TableName: aws.String(r.table),
				Key: map[string]types.AttributeValue{
					"hashKey":  &types.AttributeValueMemberS{Value: eval.HashKey},
					"rangeKey": &types.AttributeValueMemberS{Value: eval.RangeKey},
				},
				UpdateExpression:          expr.Update(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
			},
		}},
	})
	if err != nil {
		message := dynamoutil.FailureMessage("update evaluation", err)
		r.logger.Error("update evaluation", zap.String("range_key", eval.RangeKey), zap.Error(err))
		return false, apperr.Internal("%s", message)
	}

	for _, ch := range changes {
		ch.apply(eval)
	}
	eval.UpdateDate = updateDate
	eval.UpdatedBy = r.actor
	r.logger.Info("evaluation updated", zap.String("range_key", eval.RangeKey), zap.Int("fields", len(changes)))
	return true, nil
}
