package services

import (
	"testing"
	"time"

	"workshop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractiveOutcomeCorrect(t *testing.T) {
	interactive := &models.Interactive{ID: 7, Title: "Загадка недели", Answer: "Тень", Sparks: 15}
	now := time.Now()

	completion, activity := interactiveOutcome(interactive, 42, "тень", now)

	require.NotNil(t, completion)
	assert.Equal(t, int64(42), completion.UserID)
	assert.Equal(t, int64(7), completion.InteractiveID)
	assert.True(t, completion.Correct)
	assert.Equal(t, 15.0, completion.SparksEarned)

	require.NotNil(t, activity)
	assert.Equal(t, models.ActivityInteractive, activity.Type)
	assert.Equal(t, 15.0, activity.SparksDelta)
}

// A wrong answer still consumes the single attempt: the completion is recorded
// with zero sparks and no activity at all, and the insert path must tolerate
// that nil.
func TestInteractiveOutcomeWrong(t *testing.T) {
	interactive := &models.Interactive{ID: 7, Title: "Загадка недели", Answer: "Тень", Sparks: 15}

	completion, activity := interactiveOutcome(interactive, 42, "свет", time.Now())

	require.NotNil(t, completion)
	assert.False(t, completion.Correct)
	assert.Equal(t, 0.0, completion.SparksEarned)
	assert.Nil(t, activity)
}
