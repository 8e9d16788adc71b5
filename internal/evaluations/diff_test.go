package evaluations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durianpy/events-backend/internal/models"
)

func TestDiffNilPatchFieldsAreUntouched(t *testing.T) {
	current := &models.Evaluation{Answer: "A", Remarks: "ok", Status: models.EvaluationStatusDraft}
	changes := diff(current, &models.EvaluationPatch{})
	assert.Empty(t, changes)
}

func TestDiffEqualValuesProduceNoChange(t *testing.T) {
	current := &models.Evaluation{Answer: "A", Remarks: "ok", Status: models.EvaluationStatusDraft}
	answer := "A"
	remarks := "ok"
	status := models.EvaluationStatusDraft
	changes := diff(current, &models.EvaluationPatch{Answer: &answer, Remarks: &remarks, Status: &status})
	assert.Empty(t, changes)
}

func TestDiffCollectsOnlyDifferingFields(t *testing.T) {
	current := &models.Evaluation{Answer: "A", Remarks: "ok", Status: models.EvaluationStatusDraft}
	answer := "B"
	remarks := "ok"
	status := models.EvaluationStatusSubmitted
	changes := diff(current, &models.EvaluationPatch{Answer: &answer, Remarks: &remarks, Status: &status})
	require.Len(t, changes, 2)
	assert.Equal(t, "answer", changes[0].name)
	assert.Equal(t, "status", changes[1].name)
}

func TestDiffApplyRefreshesCopy(t *testing.T) {
	current := &models.Evaluation{Answer: "A"}
	answer := "B"
	changes := diff(current, &models.EvaluationPatch{Answer: &answer})
	require.Len(t, changes, 1)
	changes[0].apply(current)
	assert.Equal(t, "B", current.Answer)
}

func TestRangeKeyMatchModes(t *testing.T) {
	tests := []struct {
		name           string
		registrationID string
		question       string
		wantMode       keyMatch
		wantSortKey    string
	}{
		{"partition only", "", "", matchPartition, ""},
		{"partition only even with question", "", "q1", matchPartition, ""},
		{"prefix", "R1", "", matchPrefix, "R1#"},
		{"exact", "R1", "q1", matchExact, "R1#q1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, sortKey := rangeKeyMatch(tt.registrationID, tt.question)
			assert.Equal(t, tt.wantMode, mode)
			assert.Equal(t, tt.wantSortKey, sortKey)
		})
	}
}
