package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModerationStatus(t *testing.T) {
	assert.True(t, ModerationPending.Valid())
	assert.True(t, ModerationApproved.Valid())
	assert.True(t, ModerationRejected.Valid())
	assert.False(t, ModerationStatus("deleted").Valid())

	assert.False(t, ModerationPending.Terminal())
	assert.True(t, ModerationApproved.Terminal())
	assert.True(t, ModerationRejected.Terminal())

	// pending is never a valid admin decision
	assert.False(t, ModerationPending.Decision())
	assert.True(t, ModerationApproved.Decision())
	assert.True(t, ModerationRejected.Decision())
}
