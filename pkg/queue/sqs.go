// Package queue wraps the SQS payment tracking queue.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

// Record is one delivered queue message. ReceiptHandle acknowledges the
// delivery; until Delete is called the message returns after its visibility
// timeout.
type Record struct {
	MessageID     string
	Body          string
	ReceiptHandle string
}

// SQS receives and acknowledges messages on a single queue URL.
type SQS struct {
	client *sqs.Client
	url    string
	logger *zap.Logger
}

// NewSQS creates a queue wrapper for the given queue URL.
func NewSQS(client *sqs.Client, queueURL string, logger *zap.Logger) *SQS {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQS{client: client, url: queueURL, logger: logger}
}

// Receive long-polls for up to max messages.
func (q *SQS) Receive(ctx context.Context, max int32, wait time.Duration) ([]Record, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.url),
		MaxNumberOfMessages: max,
		WaitTimeSeconds:     int32(wait / time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("receive message: %w", err)
	}
	records := make([]Record, 0, len(out.Messages))
	for _, m := range out.Messages {
		records = append(records, Record{
			MessageID:     aws.ToString(m.MessageId),
			Body:          aws.ToString(m.Body),
			ReceiptHandle: aws.ToString(m.ReceiptHandle),
		})
	}
	return records, nil
}

// Delete removes a message from the queue by its receipt handle.
func (q *SQS) Delete(ctx context.Context, receiptHandle string) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.url),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
