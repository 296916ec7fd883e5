package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptsAnswer(t *testing.T) {
	i := &Interactive{Answer: "Тень"}

	assert.True(t, i.AcceptsAnswer("Тень"))
	assert.True(t, i.AcceptsAnswer("тень"), "match is case-insensitive")
	assert.True(t, i.AcceptsAnswer("  тень  "))
	assert.False(t, i.AcceptsAnswer("свет"))
	assert.False(t, i.AcceptsAnswer(""))
	assert.False(t, i.AcceptsAnswer("   "))
}

func TestAcceptsAnswerFreeForm(t *testing.T) {
	i := &Interactive{Answer: ""}

	assert.True(t, i.AcceptsAnswer("любой текст"))
	assert.False(t, i.AcceptsAnswer(""), "empty submission is never accepted")
}
