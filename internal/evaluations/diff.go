package evaluations

import "github.com/durianpy/events-backend/internal/models"

// fieldChange is one differing attribute: the stored attribute name, the new
// value, and a setter used to refresh the in-memory copy once the write
// commits.
type fieldChange struct {
	name  string
	value interface{}
	apply func(*models.Evaluation)
}

// diff computes the field-level changes between a stored evaluation and a
// patch. Nil patch fields are left untouched; equal values produce no change.
func diff(current *models.Evaluation, patch *models.EvaluationPatch) []fieldChange {
	var changes []fieldChange
	if patch.Answer != nil && *patch.Answer != current.Answer {
		v := *patch.Answer
		changes = append(changes, fieldChange{
			name:  "answer",
			value: v,
			apply: func(e *models.Evaluation) { e.Answer = v },
		})
	}
	if patch.Remarks != nil && *patch.Remarks != current.Remarks {
		v := *patch.Remarks
		changes = append(changes, fieldChange{
			name:  "remarks",
			value: v,
			apply: func(e *models.Evaluation) { e.Remarks = v },
		})
	}
	if patch.Status != nil && *patch.Status != current.Status {
		v := *patch.Status
		changes = append(changes, fieldChange{
			name:  "status",
			value: string(v),
			apply: func(e *models.Evaluation) { e.Status = v },
		})
	}
	return changes
}
