package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// SES sends emails through Amazon SES.
type SES struct {
	client *sesv2.Client
	sender string
	logger *zap.Logger
}

// NewSES creates an SES-backed mailer sending from the given identity.
func NewSES(client *sesv2.Client, sender string, logger *zap.Logger) *SES {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SES{client: client, sender: sender, logger: logger}
}

// Send dispatches one email. Transport failures are returned to the caller.
func (s *SES) Send(ctx context.Context, msg *EmailMessage) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Render())},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	s.logger.Info("email sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("email_type", string(msg.Type)),
		zap.String("event_id", msg.EventID),
	)
	return nil
}
