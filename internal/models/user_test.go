package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForSparks(t *testing.T) {
	assert.Equal(t, "Новичок", LevelForSparks(0))
	assert.Equal(t, "Новичок", LevelForSparks(99))
	assert.Equal(t, "Ученик", LevelForSparks(100))
	assert.Equal(t, "Ученик", LevelForSparks(299))
	assert.Equal(t, "Мастер", LevelForSparks(300))
	assert.Equal(t, "Вдохновитель", LevelForSparks(700))
	assert.Equal(t, "Вдохновитель", LevelForSparks(10000))
}
