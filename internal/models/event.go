package models

// Event is a conference event. This core only reads events to validate
// references; event CRUD lives elsewhere.
type Event struct {
	HashKey     string `json:"-" dynamodbav:"hashKey"`
	RangeKey    string `json:"-" dynamodbav:"rangeKey"`
	EventID     string `json:"eventId" dynamodbav:"eventId"`
	Name        string `json:"name" dynamodbav:"name"`
	Description string `json:"description,omitempty" dynamodbav:"description"`
	Status      string `json:"status" dynamodbav:"status"`
	Venue       string `json:"venue,omitempty" dynamodbav:"venue"`
	StartDate   string `json:"startDate,omitempty" dynamodbav:"startDate"`
	EndDate     string `json:"endDate,omitempty" dynamodbav:"endDate"`
}
