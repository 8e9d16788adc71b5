package evaluations

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/durianpy/events-backend/internal/models"
	"github.com/durianpy/events-backend/pkg/apperr"
)

type fakeEvents struct {
	events map[string]*models.Event
	calls  int
}

func (f *fakeEvents) Get(ctx context.Context, eventID string) (*models.Event, *apperr.Error) {
	f.calls++
	if ev, ok := f.events[eventID]; ok {
		return ev, nil
	}
	return nil, apperr.NotFound("event with id %s not found", eventID)
}

type fakeRegistrations struct {
	regs      map[string]*models.Registration // keyed eventID|registrationID
	getCalls  int
	patches   []*models.RegistrationPatch
	updateErr *apperr.Error
}

func (f *fakeRegistrations) Get(ctx context.Context, eventID, registrationID string) (*models.Registration, *apperr.Error) {
	f.getCalls++
	if reg, ok := f.regs[eventID+"|"+registrationID]; ok {
		return reg, nil
	}
	return nil, apperr.NotFound("registration with id %s not found", registrationID)
}

func (f *fakeRegistrations) Update(ctx context.Context, reg *models.Registration, patch *models.RegistrationPatch) *apperr.Error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.patches = append(f.patches, patch)
	if patch.CertificateClaimed != nil {
		reg.CertificateClaimed = *patch.CertificateClaimed
	}
	return nil
}

// fakeEvaluations stores rows in memory and mirrors the repository's
// key-matching and empty-result rules, reusing rangeKeyMatch and diff.
type fakeEvaluations struct {
	items       []models.Evaluation
	storeErr    *apperr.Error
	updateErr   *apperr.Error
	updateCalls int
}

func (f *fakeEvaluations) Store(ctx context.Context, eventID, registrationID string, entries []models.EvaluationSubmission) ([]models.Evaluation, *apperr.Error) {
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	stored := make([]models.Evaluation, 0, len(entries))
	for _, in := range entries {
		row := models.Evaluation{
			HashKey:        eventID,
			RangeKey:       models.EvaluationRangeKey(registrationID, in.Question),
			EntryID:        "entry-" + in.Question,
			EventID:        eventID,
			RegistrationID: registrationID,
			Question:       in.Question,
			Answer:         in.Answer,
			Remarks:        in.Remarks,
			Status:         models.EvaluationStatusDraft,
			CreateDate:     "2025-02-01T00:00:00Z",
			UpdateDate:     "2025-02-01T00:00:00Z",
			CreatedBy:      "tester",
			UpdatedBy:      "tester",
		}
		stored = append(stored, row)
	}
	f.items = append(f.items, stored...)
	return stored, nil
}

func (f *fakeEvaluations) Query(ctx context.Context, eventID, registrationID, question string) ([]models.Evaluation, *apperr.Error) {
	var out []models.Evaluation
	if eventID == "" {
		out = append(out, f.items...)
	} else {
		mode, sortKey := rangeKeyMatch(registrationID, question)
		for _, e := range f.items {
			if e.HashKey != eventID {
				continue
			}
			switch mode {
			case matchPartition:
				out = append(out, e)
			case matchPrefix:
				if strings.HasPrefix(e.RangeKey, sortKey) {
					out = append(out, e)
				}
			case matchExact:
				if e.RangeKey == sortKey {
					out = append(out, e)
				}
			}
		}
	}
	if len(out) == 0 {
		if eventID != "" && registrationID != "" && question != "" {
			return nil, apperr.NotFound("evaluation with id %s, %s not found", eventID, models.EvaluationRangeKey(registrationID, question))
		}
		return nil, apperr.NotFound("no evaluations found")
	}
	return out, nil
}

func (f *fakeEvaluations) QueryByQuestion(ctx context.Context, eventID, question string) ([]models.Evaluation, *apperr.Error) {
	var out []models.Evaluation
	for _, e := range f.items {
		if e.HashKey == eventID && e.Question == question {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("no evaluations found for event %s and question %s", eventID, question)
	}
	return out, nil
}

func (f *fakeEvaluations) Update(ctx context.Context, eval *models.Evaluation, patch *models.EvaluationPatch) (bool, *apperr.Error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	changes := diff(eval, patch)
	if len(changes) == 0 {
		return false, nil
	}
	for _, ch := range changes {
		ch.apply(eval)
	}
	eval.UpdateDate = "2025-02-02T00:00:00Z"
	eval.UpdatedBy = "tester"
	f.updateCalls++
	return true, nil
}

func newFixture() (*Service, *fakeEvents, *fakeRegistrations, *fakeEvaluations) {
	evs := &fakeEvents{events: map[string]*models.Event{
		"E1": {EventID: "E1", Name: "PyCon Davao 2025"},
	}}
	regs := &fakeRegistrations{regs: map[string]*models.Registration{
		"E1|R1": {HashKey: "E1", RangeKey: "rk-1", RegistrationID: "R1", EventID: "E1", Email: "ada@example.com"},
	}}
	store := &fakeEvaluations{}
	return NewService(evs, regs, store, zap.NewNop()), evs, regs, store
}

func TestCreatePersistsEntriesAndPatchesRegistration(t *testing.T) {
	svc, _, regs, _ := newFixture()

	entries, aerr := svc.Create(context.Background(), "E1", "R1", []models.EvaluationSubmission{
		{Question: "q1", Answer: "A"},
		{Question: "q2", Answer: "B"},
	})
	require.Nil(t, aerr)
	require.Len(t, entries, 2)
	assert.Equal(t, "R1#q1", entries[0].RangeKey)
	assert.Equal(t, "R1#q2", entries[1].RangeKey)
	assert.Equal(t, models.EvaluationStatusDraft, entries[0].Status)
	assert.Equal(t, models.EvaluationStatusDraft, entries[1].Status)

	require.Len(t, regs.patches, 1)
	require.NotNil(t, regs.patches[0].CertificateClaimed)
	assert.True(t, *regs.patches[0].CertificateClaimed)
	assert.True(t, regs.regs["E1|R1"].CertificateClaimed)
}

func TestCreateUnknownEventPersistsNothing(t *testing.T) {
	svc, _, regs, store := newFixture()

	_, aerr := svc.Create(context.Background(), "missing", "R1", []models.EvaluationSubmission{{Question: "q1"}})
	require.NotNil(t, aerr)
	assert.Equal(t, http.StatusNotFound, aerr.Code)
	assert.Empty(t, store.items)
	assert.Zero(t, regs.getCalls)
}

func TestCreateUnknownRegistrationPersistsNothing(t *testing.T) {
	svc, _, _, store := newFixture()

	_, aerr := svc.Create(context.Background(), "E1", "missing", []models.EvaluationSubmission{{Question: "q1"}})
	require.NotNil(t, aerr)
	assert.Equal(t, http.StatusNotFound, aerr.Code)
	assert.Empty(t, store.items)
}

func TestCreateCertificatePatchFailureStillSucceeds(t *testing.T) {
	svc, _, regs, _ := newFixture()
	regs.updateErr = apperr.Internal("patch failed")

	entries, aerr := svc.Create(context.Background(), "E1", "R1", []models.EvaluationSubmission{{Question: "q1"}})
	require.Nil(t, aerr)
	assert.Len(t, entries, 1)
}

func TestUpdateNoopWhenPatchMatchesStoredState(t *testing.T) {
	svc, _, _, store := newFixture()
	store.items = []models.Evaluation{{
		HashKey:        "E1",
		RangeKey:       "R1#q1",
		RegistrationID: "R1",
		Question:       "q1",
		Answer:         "A",
		Status:         models.EvaluationStatusDraft,
		UpdateDate:     "2025-01-01T00:00:00Z",
		UpdatedBy:      "system",
	}}

	answer := "A"
	entry, message, aerr := svc.Update(context.Background(), "E1", "R1", "q1", &models.EvaluationPatch{Answer: &answer})
	require.Nil(t, aerr)
	assert.Equal(t, NoUpdateMessage, message)
	assert.Equal(t, "A", entry.Answer)
	assert.Equal(t, "2025-01-01T00:00:00Z", entry.UpdateDate)
	assert.Equal(t, "system", entry.UpdatedBy)
	assert.Zero(t, store.updateCalls)
}

func TestUpdateWritesOnceAndRestampsAudit(t *testing.T) {
	svc, _, _, store := newFixture()
	store.items = []models.Evaluation{{
		HashKey:        "E1",
		RangeKey:       "R1#q1",
		RegistrationID: "R1",
		Question:       "q1",
		Answer:         "A",
		Status:         models.EvaluationStatusDraft,
		UpdateDate:     "2025-01-01T00:00:00Z",
		UpdatedBy:      "system",
	}}

	answer := "B"
	entry, message, aerr := svc.Update(context.Background(), "E1", "R1", "q1", &models.EvaluationPatch{Answer: &answer})
	require.Nil(t, aerr)
	assert.Empty(t, message)
	assert.Equal(t, "B", entry.Answer)
	assert.Equal(t, "2025-02-02T00:00:00Z", entry.UpdateDate)
	assert.Equal(t, "tester", entry.UpdatedBy)
	assert.Equal(t, 1, store.updateCalls)
}

func TestUpdateUnknownEvaluation(t *testing.T) {
	svc, _, _, _ := newFixture()

	answer := "B"
	_, _, aerr := svc.Update(context.Background(), "E1", "R1", "q1", &models.EvaluationPatch{Answer: &answer})
	require.NotNil(t, aerr)
	assert.Equal(t, http.StatusNotFound, aerr.Code)
	assert.Contains(t, aerr.Message, "R1#q1")
}

func TestGetChecksEventOnly(t *testing.T) {
	svc, _, regs, store := newFixture()
	store.items = []models.Evaluation{{
		HashKey:  "E1",
		RangeKey: "R9#q1",
		Question: "q1",
	}}

	// R9 has no registration row; get-one still succeeds.
	entry, aerr := svc.Get(context.Background(), "E1", "R9", "q1")
	require.Nil(t, aerr)
	assert.Equal(t, "R9#q1", entry.RangeKey)
	assert.Zero(t, regs.getCalls)
}

func TestGetUnknownEvent(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, aerr := svc.Get(context.Background(), "missing", "R1", "q1")
	require.NotNil(t, aerr)
	assert.Equal(t, http.StatusNotFound, aerr.Code)
}

func TestListByRegistrationPrefix(t *testing.T) {
	svc, _, _, store := newFixture()
	store.items = []models.Evaluation{
		{HashKey: "E1", RangeKey: "R1#q1", RegistrationID: "R1", Question: "q1"},
		{HashKey: "E1", RangeKey: "R1#q2", RegistrationID: "R1", Question: "q2"},
		{HashKey: "E1", RangeKey: "R2#q1", RegistrationID: "R2", Question: "q1"},
		{HashKey: "E2", RangeKey: "R1#q1", RegistrationID: "R1", Question: "q1"},
	}

	entries, aerr := svc.List(context.Background(), "E1", "R1", "")
	require.Nil(t, aerr)
	require.Len(t, entries, 2)
	assert.Equal(t, "R1#q1", entries[0].RangeKey)
	assert.Equal(t, "R1#q2", entries[1].RangeKey)
}

func TestListWithoutEventScansEverything(t *testing.T) {
	svc, evs, _, store := newFixture()
	store.items = []models.Evaluation{
		{HashKey: "E1", RangeKey: "R1#q1"},
		{HashKey: "E2", RangeKey: "R2#q1"},
	}

	entries, aerr := svc.List(context.Background(), "", "", "")
	require.Nil(t, aerr)
	assert.Len(t, entries, 2)
	assert.Zero(t, evs.calls)
}

func TestListEmptyResultIsNotFound(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, aerr := svc.List(context.Background(), "E1", "", "")
	require.NotNil(t, aerr)
	assert.Equal(t, http.StatusNotFound, aerr.Code)
	assert.Equal(t, "no evaluations found", aerr.Message)
}

func TestListByQuestionAcrossRegistrations(t *testing.T) {
	svc, _, _, store := newFixture()
	store.items = []models.Evaluation{
		{HashKey: "E1", RangeKey: "R1#q1", RegistrationID: "R1", Question: "q1"},
		{HashKey: "E1", RangeKey: "R2#q1", RegistrationID: "R2", Question: "q1"},
		{HashKey: "E1", RangeKey: "R1#q2", RegistrationID: "R1", Question: "q2"},
	}

	entries, aerr := svc.ListByQuestion(context.Background(), "E1", "q1")
	require.Nil(t, aerr)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "q1", e.Question)
	}
}
