package models

import "errors"

// TransactionStatus is the terminal outcome of a payment attempt.
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
	TransactionStatusPending TransactionStatus = "PENDING"
)

// RegistrationSubmission is the attendee-submitted registration data embedded
// in a payment transaction. It is not persisted as-is; on payment success it
// is mapped into a Registration.
type RegistrationSubmission struct {
	EventID              string `json:"eventId"`
	Email                string `json:"email"`
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Nickname             string `json:"nickname"`
	Pronouns             string `json:"pronouns"`
	ContactNumber        string `json:"contactNumber"`
	Organization         string `json:"organization"`
	JobTitle             string `json:"jobTitle"`
	TicketType           string `json:"ticketType"`
	SprintDay            bool   `json:"sprintDay"`
	AvailTShirt          bool   `json:"availTShirt"`
	ShirtType            string `json:"shirtType"`
	ShirtSize            string `json:"shirtSize"`
	CommunityInvolvement string `json:"communityInvolvement"`
	FutureVolunteer      bool   `json:"futureVolunteer"`
	DietaryRestrictions  string `json:"dietaryRestrictions"`
	AccessibilityNeeds   string `json:"accessibilityNeeds"`
	DiscountCode         string `json:"discountCode"`
	ValidIDObjectKey     string `json:"validIdObjectKey"`
}

// PaymentTransaction is the payment metadata plus the embedded submission.
type PaymentTransaction struct {
	EventID          string                 `json:"eventId"`
	AmountPaid       float64                `json:"amountPaid"`
	TransactionID    string                 `json:"transactionId"`
	PaymentID        string                 `json:"paymentId"`
	ReferenceNumber  string                 `json:"referenceNumber"`
	GcashPayment     bool                   `json:"gcashPayment"`
	RegistrationData RegistrationSubmission `json:"registrationData"`
}

// PaymentTrackingMessage is one asynchronous payment-status notification.
// Unknown fields in the message body are ignored.
type PaymentTrackingMessage struct {
	RegistrationDetails *PaymentTransaction `json:"registration_details"`
	Status              TransactionStatus   `json:"status"`
}

// Validate checks the fields required to process the message.
func (m *PaymentTrackingMessage) Validate() error {
	if m.RegistrationDetails == nil {
		return errors.New("registration_details is required")
	}
	if m.Status == "" {
		return errors.New("status is required")
	}
	if m.RegistrationDetails.RegistrationData.Email == "" {
		return errors.New("registration email is required")
	}
	return nil
}
