// Package payments consumes asynchronous payment-status messages and records
// confirmed registrations.
//
// Processing is deliberately not idempotent across deliveries: the same
// successful payment message delivered twice creates two registration rows
// with distinct generated ids. Deduplication by transaction id is pending
// product confirmation.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/durianpy/events-backend/internal/mailer"
	"github.com/durianpy/events-backend/internal/models"
	"github.com/durianpy/events-backend/pkg/apperr"
	"github.com/durianpy/events-backend/pkg/queue"
)

const receiveBackoff = 10 * time.Second

// Queue is the payment tracking message source.
type Queue interface {
	Receive(ctx context.Context, max int32, wait time.Duration) ([]queue.Record, error)
	Delete(ctx context.Context, receiptHandle string) error
}

// RegistrationStore persists confirmed registrations.
type RegistrationStore interface {
	Put(ctx context.Context, reg *models.Registration) *apperr.Error
}

// Processor turns queued payment events into notifications and, on success,
// durable registration rows.
type Processor struct {
	queue       Queue
	store       RegistrationStore
	mailer      mailer.Mailer
	logger      *zap.Logger
	maxMessages int32
	waitTime    time.Duration
	now         func() time.Time
	newID       func() string
}

// NewProcessor creates a payment confirmation processor.
func NewProcessor(q Queue, store RegistrationStore, m mailer.Mailer, maxMessages int, waitSeconds int, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		queue:       q,
		store:       store,
		mailer:      m,
		logger:      logger,
		maxMessages: int32(maxMessages),
		waitTime:    time.Duration(waitSeconds) * time.Second,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Run receives and processes batches until ctx is done. Records within a
// batch are handled sequentially in delivery order; one record's failure
// never blocks its siblings.
func (p *Processor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("payment processor stopping")
			return
		default:
		}

		records, err := p.queue.Receive(ctx, p.maxMessages, p.waitTime)
		if err != nil {
			p.logger.Warn("receive payment messages", zap.Error(err))
			time.Sleep(receiveBackoff)
			continue
		}
		for _, rec := range records {
			p.handleRecord(ctx, rec)
		}
	}
}

// handleRecord processes one delivered record and always acknowledges it.
// By the time processing ends the registrant has been emailed (or the body
// is unrecoverable garbage), so redelivery is never desired.
func (p *Processor) handleRecord(ctx context.Context, rec queue.Record) {
	defer func() {
		if err := p.queue.Delete(ctx, rec.ReceiptHandle); err != nil {
			p.logger.Error("delete payment message",
				zap.String("receipt_handle", rec.ReceiptHandle),
				zap.Error(err),
			)
		}
	}()

	if err := p.process(ctx, rec); err != nil {
		p.logger.Error("process payment record",
			zap.String("receipt_handle", rec.ReceiptHandle),
			zap.Error(err),
		)
	}
}

func (p *Processor) process(ctx context.Context, rec queue.Record) error {
	var msg models.PaymentTrackingMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("parse payment tracking body: %w", err)
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid payment tracking body: %w", err)
	}
	details := msg.RegistrationDetails
	data := details.RegistrationData

	subject, body := emailForStatus(msg.Status)
	email := &mailer.EmailMessage{
		To:         []string{data.Email},
		Subject:    subject,
		Salutation: fmt.Sprintf("Hi %s,", data.FirstName),
		Body:       body,
		Regards:    []string{"Best,"},
		Type:       mailer.EmailTypeRegistration,
		EventID:    details.EventID,
	}
	if err := p.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("send payment status email to %s: %w", data.Email, err)
	}

	if msg.Status != models.TransactionStatusSuccess {
		p.logger.Info("payment unsuccessful, no registration created",
			zap.String("email", data.Email),
			zap.String("status", string(msg.Status)),
		)
		return nil
	}

	reg := p.buildRegistration(details, msg.Status)
	if aerr := p.store.Put(ctx, reg); aerr != nil {
		// The email is already out; there is no compensating transaction.
		return fmt.Errorf("save registration for %s: %w", data.Email, aerr)
	}
	p.logger.Info("registration recorded",
		zap.String("email", data.Email),
		zap.String("registration_id", reg.RegistrationID),
	)
	return nil
}

// buildRegistration maps the embedded submission plus payment metadata into a
// full registration row with fresh ids and timestamps.
func (p *Processor) buildRegistration(details *models.PaymentTransaction, status models.TransactionStatus) *models.Registration {
	data := details.RegistrationData
	registrationID := p.newID()
	hashKey := data.EventID
	if hashKey == "" {
		hashKey = registrationID
	}
	currentDate := p.now().UTC().Format(time.RFC3339)

	return &models.Registration{
		HashKey:        hashKey,
		RangeKey:       p.newID(),
		RegistrationID: registrationID,
		EventID:        data.EventID,
		CreateDate:     currentDate,
		UpdateDate:     currentDate,

		Email:         data.Email,
		FirstName:     data.FirstName,
		LastName:      data.LastName,
		Nickname:      data.Nickname,
		Pronouns:      data.Pronouns,
		ContactNumber: data.ContactNumber,
		Organization:  data.Organization,
		JobTitle:      data.JobTitle,

		TicketType:           data.TicketType,
		SprintDay:            data.SprintDay,
		AvailTShirt:          data.AvailTShirt,
		ShirtType:            data.ShirtType,
		ShirtSize:            data.ShirtSize,
		CommunityInvolvement: data.CommunityInvolvement,
		FutureVolunteer:      data.FutureVolunteer,
		DietaryRestrictions:  data.DietaryRestrictions,
		AccessibilityNeeds:   data.AccessibilityNeeds,
		DiscountCode:         data.DiscountCode,
		ValidIDObjectKey:     data.ValidIDObjectKey,

		AmountPaid:      details.AmountPaid,
		TransactionID:   details.TransactionID,
		PaymentID:       details.PaymentID,
		ReferenceNumber: details.ReferenceNumber,
		GcashPayment:    details.GcashPayment,

		RegistrationEmailSent: true,
		ConfirmationEmailSent: true,
		EntryStatus:           string(status),
	}
}

// emailForStatus selects the subject and body lines for a payment outcome.
func emailForStatus(status models.TransactionStatus) (string, []string) {
	if status == models.TransactionStatusSuccess {
		return "Registration Successful", []string{
			"Thank you for registering for PyCon Davao 2025! We are excited to have you join us for this amazing event.",
			"Your payment has been successfully processed. Below are your registration details:",
		}
	}
	return "Payment Unsuccessful", []string{
		"Your payment was not successful. Please try again later.",
	}
}
