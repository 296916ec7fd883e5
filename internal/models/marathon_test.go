package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarathonPercent(t *testing.T) {
	assert.Equal(t, 0, MarathonPercent(1, 5), "day one means nothing submitted yet")
	assert.Equal(t, 40, MarathonPercent(3, 5))
	assert.Equal(t, 80, MarathonPercent(5, 5))
	assert.Equal(t, 100, MarathonPercent(6, 5), "pointer rests past the last day once finished")
	assert.Equal(t, 100, MarathonPercent(7, 5), "clamped above duration")
	assert.Equal(t, 0, MarathonPercent(0, 5))
	assert.Equal(t, 0, MarathonPercent(3, 0), "zero duration never divides")
}

func TestTaskForDay(t *testing.T) {
	m := &Marathon{
		DurationDays: 3,
		Tasks: []MarathonTask{
			{Day: 1, Title: "Скетч"},
			{Day: 2, Title: "Цвет"},
			{Day: 3, Title: "Финал", RequiresSubmission: true},
		},
	}

	task := m.TaskForDay(2)
	require.NotNil(t, task)
	assert.Equal(t, "Цвет", task.Title)

	assert.Nil(t, m.TaskForDay(4))
	assert.Nil(t, m.TaskForDay(0))
}
