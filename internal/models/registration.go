package models

// Registration is one attendee's confirmed registration. It is created only
// after a successful payment confirmation, never speculatively.
//
// Keys: hashKey is the event id (or a generated fallback when the submission
// carried none), rangeKey is a generated unique id.
type Registration struct {
	HashKey        string `json:"-" dynamodbav:"hashKey"`
	RangeKey       string `json:"-" dynamodbav:"rangeKey"`
	RegistrationID string `json:"registrationId" dynamodbav:"registrationId"`
	EventID        string `json:"eventId" dynamodbav:"eventId"`
	CreateDate     string `json:"createDate" dynamodbav:"createDate"`
	UpdateDate     string `json:"updateDate" dynamodbav:"updateDate"`

	Email         string `json:"email" dynamodbav:"email"`
	FirstName     string `json:"firstName" dynamodbav:"firstName"`
	LastName      string `json:"lastName" dynamodbav:"lastName"`
	Nickname      string `json:"nickname,omitempty" dynamodbav:"nickname"`
	Pronouns      string `json:"pronouns,omitempty" dynamodbav:"pronouns"`
	ContactNumber string `json:"contactNumber,omitempty" dynamodbav:"contactNumber"`
	Organization  string `json:"organization,omitempty" dynamodbav:"organization"`
	JobTitle      string `json:"jobTitle,omitempty" dynamodbav:"jobTitle"`

	TicketType           string `json:"ticketType" dynamodbav:"ticketType"`
	SprintDay            bool   `json:"sprintDay" dynamodbav:"sprintDay"`
	AvailTShirt          bool   `json:"availTShirt" dynamodbav:"availTShirt"`
	ShirtType            string `json:"shirtType,omitempty" dynamodbav:"shirtType"`
	ShirtSize            string `json:"shirtSize,omitempty" dynamodbav:"shirtSize"`
	CommunityInvolvement string `json:"communityInvolvement,omitempty" dynamodbav:"communityInvolvement"`
	FutureVolunteer      bool   `json:"futureVolunteer" dynamodbav:"futureVolunteer"`
	DietaryRestrictions  string `json:"dietaryRestrictions,omitempty" dynamodbav:"dietaryRestrictions"`
	AccessibilityNeeds   string `json:"accessibilityNeeds,omitempty" dynamodbav:"accessibilityNeeds"`
	DiscountCode         string `json:"discountCode,omitempty" dynamodbav:"discountCode"`
	ValidIDObjectKey     string `json:"validIdObjectKey,omitempty" dynamodbav:"validIdObjectKey"`

	AmountPaid      float64 `json:"amountPaid" dynamodbav:"amountPaid"`
	TransactionID   string  `json:"transactionId" dynamodbav:"transactionId"`
	PaymentID       string  `json:"paymentId" dynamodbav:"paymentId"`
	ReferenceNumber string  `json:"referenceNumber" dynamodbav:"referenceNumber"`
	GcashPayment    bool    `json:"gcashPayment" dynamodbav:"gcashPayment"`

	RegistrationEmailSent bool   `json:"registrationEmailSent" dynamodbav:"registrationEmailSent"`
	ConfirmationEmailSent bool   `json:"confirmationEmailSent" dynamodbav:"confirmationEmailSent"`
	CertificateClaimed    bool   `json:"certificateClaimed" dynamodbav:"certificateClaimed"`
	EntryStatus           string `json:"entryStatus" dynamodbav:"entryStatus"`
}

// RegistrationPatch is a partial registration update; nil fields are left
// untouched.
type RegistrationPatch struct {
	CertificateClaimed *bool `json:"certificateClaimed,omitempty"`
}
