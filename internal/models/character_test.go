package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBonusRange(t *testing.T) {
	min, max := ParseBonusRange("10")
	assert.Equal(t, 10.0, min)
	assert.Equal(t, 10.0, max)

	min, max = ParseBonusRange("5-15")
	assert.Equal(t, 5.0, min)
	assert.Equal(t, 15.0, max)

	min, max = ParseBonusRange(" 5 - 15 ")
	assert.Equal(t, 5.0, min)
	assert.Equal(t, 15.0, max)

	min, max = ParseBonusRange("15-5")
	assert.Equal(t, 15.0, min)
	assert.Equal(t, 15.0, max, "inverted range collapses to min")

	min, max = ParseBonusRange("garbage")
	assert.Zero(t, min)
	assert.Zero(t, max)
}

func TestBonusTypeValid(t *testing.T) {
	assert.True(t, BonusPercent.Valid())
	assert.True(t, BonusRandomGift.Valid())
	assert.True(t, BonusStreakMultiplier.Valid())
	assert.False(t, BonusType("jackpot").Valid())
	assert.False(t, BonusType("").Valid())
}
