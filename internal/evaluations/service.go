// Package evaluations orchestrates the evaluation workflow: referential
// precondition checks, diff-based updates and the certificate-eligibility
// side effect.
package evaluations

import (
	"context"

	"go.uber.org/zap"

	"github.com/durianpy/events-backend/internal/models"
	"github.com/durianpy/events-backend/pkg/apperr"
)

// NoUpdateMessage is returned when an update patch matches stored state.
const NoUpdateMessage = "no update"

// EventStore resolves event references.
type EventStore interface {
	Get(ctx context.Context, eventID string) (*models.Event, *apperr.Error)
}

// RegistrationStore resolves and patches registrations.
type RegistrationStore interface {
	Get(ctx context.Context, eventID, registrationID string) (*models.Registration, *apperr.Error)
	Update(ctx context.Context, reg *models.Registration, patch *models.RegistrationPatch) *apperr.Error
}

// EvaluationStore persists evaluation entries.
type EvaluationStore interface {
	Store(ctx context.Context, eventID, registrationID string, entries []models.EvaluationSubmission) ([]models.Evaluation, *apperr.Error)
	Query(ctx context.Context, eventID, registrationID, question string) ([]models.Evaluation, *apperr.Error)
	QueryByQuestion(ctx context.Context, eventID, question string) ([]models.Evaluation, *apperr.Error)
	Update(ctx context.Context, eval *models.Evaluation, patch *models.EvaluationPatch) (bool, *apperr.Error)
}

// Service runs evaluation operations behind an ordered precondition chain:
// event, then registration, then the evaluation operation itself. The first
// failing stage short-circuits and its status propagates to the caller
// verbatim.
type Service struct {
	events        EventStore
	registrations RegistrationStore
	evaluations   EvaluationStore
	logger        *zap.Logger
}

// NewService creates an evaluation workflow service.
func NewService(events EventStore, registrations RegistrationStore, evaluations EvaluationStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		events:        events,
		registrations: registrations,
		evaluations:   evaluations,
		logger:        logger,
	}
}

// Create persists the submitted entries after validating that the event and
// registration exist, then patches the registration as certificate-eligible.
// The patch is best-effort: a patch failure is logged and does not affect the
// creation result.
func (s *Service) Create(ctx context.Context, eventID, registrationID string, entries []models.EvaluationSubmission) ([]models.Evaluation, *apperr.Error) {
	if _, aerr := s.events.Get(ctx, eventID); aerr != nil {
		return nil, aerr
	}
	reg, aerr := s.registrations.Get(ctx, eventID, registrationID)
	if aerr != nil {
		return nil, aerr
	}
	stored, aerr := s.evaluations.Store(ctx, eventID, registrationID, entries)
	if aerr != nil {
		return nil, aerr
	}

	claimed := true
	if aerr := s.registrations.Update(ctx, reg, &models.RegistrationPatch{CertificateClaimed: &claimed}); aerr != nil {
		s.logger.Warn("certificate eligibility patch failed",
			zap.String("event_id", eventID),
			zap.String("registration_id", registrationID),
			zap.String("message", aerr.Message),
		)
	}
	return stored, nil
}

// Update applies a partial update to one evaluation. When no patch field
// differs from stored state, the stored entry is returned unchanged with
// NoUpdateMessage and no write is performed.
func (s *Service) Update(ctx context.Context, eventID, registrationID, question string, patch *models.EvaluationPatch) (*models.Evaluation, string, *apperr.Error) {
	if _, aerr := s.events.Get(ctx, eventID); aerr != nil {
		return nil, "", aerr
	}
	if _, aerr := s.registrations.Get(ctx, eventID, registrationID); aerr != nil {
		return nil, "", aerr
	}
	entries, aerr := s.evaluations.Query(ctx, eventID, registrationID, question)
	if aerr != nil {
		return nil, "", aerr
	}
	eval := &entries[0]

	updated, aerr := s.evaluations.Update(ctx, eval, patch)
	if aerr != nil {
		return nil, "", aerr
	}
	if !updated {
		return eval, NoUpdateMessage, nil
	}
	return eval, "", nil
}

// Get resolves one evaluation by exact composite key. Only the event is
// checked beforehand; the registration is implied by an existing evaluation
// row.
func (s *Service) Get(ctx context.Context, eventID, registrationID, question string) (*models.Evaluation, *apperr.Error) {
	if _, aerr := s.events.Get(ctx, eventID); aerr != nil {
		return nil, aerr
	}
	entries, aerr := s.evaluations.Query(ctx, eventID, registrationID, question)
	if aerr != nil {
		return nil, aerr
	}
	return &entries[0], nil
}

// List returns evaluations matching the optional filters. A given eventID is
// validated to exist before querying; with no eventID the listing falls back
// to a full scan.
func (s *Service) List(ctx context.Context, eventID, registrationID, question string) ([]models.Evaluation, *apperr.Error) {
	if eventID != "" {
		if _, aerr := s.events.Get(ctx, eventID); aerr != nil {
			return nil, aerr
		}
	}
	return s.evaluations.Query(ctx, eventID, registrationID, question)
}

// ListByQuestion returns every registrant's answer to one question across an
// event.
func (s *Service) ListByQuestion(ctx context.Context, eventID, question string) ([]models.Evaluation, *apperr.Error) {
	if _, aerr := s.events.Get(ctx, eventID); aerr != nil {
		return nil, aerr
	}
	return s.evaluations.QueryByQuestion(ctx, eventID, question)
}
