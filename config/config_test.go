package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "evaluations", cfg.Tables.Evaluations)
	assert.Equal(t, "question-index", cfg.Tables.EvaluationQuestionIndex)
	assert.Equal(t, 20, cfg.Queue.WaitSeconds)
	assert.Equal(t, 10, cfg.Queue.MaxMessages)
	assert.Equal(t, "system", cfg.Audit.CurrentActor)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("REGION", "us-west-2")
	t.Setenv("PAYMENT_QUEUE", "https://sqs.us-west-2.amazonaws.com/123/payments")
	t.Setenv("CURRENT_USER", "evaluations-api")
	t.Setenv("QUEUE_MAX_MESSAGES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.AWS.Region)
	assert.Equal(t, "https://sqs.us-west-2.amazonaws.com/123/payments", cfg.Queue.PaymentQueueURL)
	assert.Equal(t, "evaluations-api", cfg.Audit.CurrentActor)
	assert.Equal(t, 5, cfg.Queue.MaxMessages)
}
