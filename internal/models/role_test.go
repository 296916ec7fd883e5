package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCapabilities(t *testing.T) {
	got := ValidCapabilities([]Capability{
		CapabilityQuizzes,
		Capability("teleport"),
		CapabilityShop,
		CapabilityQuizzes, // duplicate
	})

	assert.Equal(t, []Capability{CapabilityQuizzes, CapabilityShop}, got)
}

func TestValidCapabilitiesEmpty(t *testing.T) {
	assert.Equal(t, []Capability{}, ValidCapabilities(nil))
	assert.Equal(t, []Capability{}, ValidCapabilities([]Capability{"nope"}))
}
