package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderAssemblesSalutationBodyAndRegards(t *testing.T) {
	msg := &EmailMessage{
		Salutation: "Hi Ada,",
		Body: []string{
			"Thank you for registering.",
			"See you there.",
		},
		Regards: []string{"Best,"},
	}
	want := "Hi Ada,\n\nThank you for registering.\nSee you there.\n\nBest,"
	assert.Equal(t, want, msg.Render())
}

func TestRenderWithoutSalutation(t *testing.T) {
	msg := &EmailMessage{Body: []string{"line"}}
	assert.Equal(t, "line\n", msg.Render())
}
