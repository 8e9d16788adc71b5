package models

import "fmt"

// EvaluationStatus is the lifecycle state of an evaluation entry.
type EvaluationStatus string

const (
	EvaluationStatusDraft     EvaluationStatus = "DRAFT"
	EvaluationStatusSubmitted EvaluationStatus = "SUBMITTED"
)

// Evaluation is one respondent's answer to one question for one registration
// within one event.
//
// Keys: hashKey is the event id, rangeKey is "{registrationId}#{question}",
// so the (event, registration, question) triple is unique by construction and
// rewriting the same triple overwrites rather than duplicates. The question
// attribute also serves as the range key of the question LSI.
type Evaluation struct {
	HashKey        string           `json:"-" dynamodbav:"hashKey"`
	RangeKey       string           `json:"-" dynamodbav:"rangeKey"`
	EntryID        string           `json:"entryId" dynamodbav:"entryId"`
	EventID        string           `json:"eventId" dynamodbav:"eventId"`
	RegistrationID string           `json:"registrationId" dynamodbav:"registrationId"`
	Question       string           `json:"question" dynamodbav:"question"`
	Answer         string           `json:"answer" dynamodbav:"answer"`
	Remarks        string           `json:"remarks,omitempty" dynamodbav:"remarks"`
	Status         EvaluationStatus `json:"status" dynamodbav:"status"`
	CreateDate     string           `json:"createDate" dynamodbav:"createDate"`
	UpdateDate     string           `json:"updateDate" dynamodbav:"updateDate"`
	CreatedBy      string           `json:"createdBy" dynamodbav:"createdBy"`
	UpdatedBy      string           `json:"updatedBy" dynamodbav:"updatedBy"`
}

// EvaluationSubmission is one entry of a create request.
type EvaluationSubmission struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer"`
	Remarks  string `json:"remarks,omitempty"`
}

// EvaluationPatch is a partial evaluation update; nil fields are left
// untouched.
type EvaluationPatch struct {
	Answer  *string           `json:"answer,omitempty"`
	Remarks *string           `json:"remarks,omitempty"`
	Status  *EvaluationStatus `json:"status,omitempty"`
}

// EvaluationRangeKey builds the composite sort key for a registration and
// question.
func EvaluationRangeKey(registrationID, question string) string {
	return fmt.Sprintf("%s#%s", registrationID, question)
}
