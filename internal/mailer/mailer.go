// Package mailer sends outbound notifications to registrants.
package mailer

import (
	"context"
	"strings"
)

// EmailType tags the kind of notification being sent.
type EmailType string

const (
	EmailTypeRegistration EmailType = "registrationEmail"
	EmailTypeConfirmation EmailType = "confirmationEmail"
	EmailTypeEvaluation   EmailType = "evaluationEmail"
)

// EmailMessage is one structured outbound notification.
type EmailMessage struct {
	To         []string
	Subject    string
	Salutation string
	Body       []string
	Regards    []string
	Type       EmailType
	EventID    string
}

// Render assembles the plain-text body from salutation, body lines and
// closing.
func (m *EmailMessage) Render() string {
	var b strings.Builder
	if m.Salutation != "" {
		b.WriteString(m.Salutation)
		b.WriteString("\n\n")
	}
	for _, line := range m.Body {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.Regards) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(m.Regards, "\n"))
	}
	return b.String()
}

// Mailer dispatches a notification. Implementations fail loudly on transport
// errors; callers decide whether to swallow them.
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
}
