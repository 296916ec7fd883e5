package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Settings writes hinge on this check, so a nil or moderator admin must never
// pass as super.
func TestAdminIsSuper(t *testing.T) {
	assert.True(t, (&Admin{ID: 1, Role: AdminRoleSuperadmin}).IsSuper())
	assert.False(t, (&Admin{ID: 2, Role: AdminRoleModerator}).IsSuper())
	assert.False(t, (*Admin)(nil).IsSuper())
}
