package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionQuiz() *Quiz {
	return &Quiz{
		ID:    1,
		Title: "Основы композиции",
		Questions: []QuizQuestion{
			{Text: "q1", Options: []string{"a", "b", "c"}, CorrectAnswer: 1},
			{Text: "q2", Options: []string{"a", "b"}, CorrectAnswer: 0},
		},
		SparksPerCorrect: 2,
	}
}

func TestScoreQuizAllCorrect(t *testing.T) {
	quiz := twoQuestionQuiz()

	correct, results := ScoreQuiz(quiz, []int{1, 0})
	require.Len(t, results, 2)
	assert.Equal(t, 2, correct)
	assert.True(t, results[0].Correct)
	assert.True(t, results[1].Correct)
}

func TestScoreQuizPartial(t *testing.T) {
	quiz := twoQuestionQuiz()

	correct, results := ScoreQuiz(quiz, []int{1, 1})
	assert.Equal(t, 1, correct)
	assert.True(t, results[0].Correct)
	assert.False(t, results[1].Correct)
	require.NotNil(t, results[1].YourAnswer)
	assert.Equal(t, 1, *results[1].YourAnswer)
}

func TestScoreQuizMissingAnswersCountIncorrect(t *testing.T) {
	quiz := twoQuestionQuiz()

	correct, results := ScoreQuiz(quiz, []int{1})
	assert.Equal(t, 1, correct)
	assert.False(t, results[1].Correct)
	assert.Nil(t, results[1].YourAnswer)
}

func TestScoreQuizOutOfRangeAnswer(t *testing.T) {
	quiz := twoQuestionQuiz()

	correct, results := ScoreQuiz(quiz, []int{5, -1})
	assert.Equal(t, 0, correct)
	assert.Nil(t, results[0].YourAnswer)
	assert.Nil(t, results[1].YourAnswer)
}

func TestScoreQuizNoQuestions(t *testing.T) {
	quiz := &Quiz{Questions: nil}

	correct, results := ScoreQuiz(quiz, []int{0})
	assert.Equal(t, 0, correct)
	assert.Empty(t, results)
}

func TestScorePercent(t *testing.T) {
	assert.Equal(t, 0, ScorePercent(0, 0))
	assert.Equal(t, 100, ScorePercent(2, 2))
	assert.Equal(t, 50, ScorePercent(1, 2))
	assert.Equal(t, 67, ScorePercent(2, 3))
}

func TestRetakeAllowed(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	quiz := &Quiz{AllowRetake: true, CooldownHours: 24}

	var none *QuizCompletion
	assert.True(t, none.RetakeAllowed(quiz, now), "first attempt is always allowed")

	fresh := &QuizCompletion{CompletedAt: now.Add(-1 * time.Hour)}
	assert.False(t, fresh.RetakeAllowed(quiz, now))

	old := &QuizCompletion{CompletedAt: now.Add(-25 * time.Hour)}
	assert.True(t, old.RetakeAllowed(quiz, now))

	exact := &QuizCompletion{CompletedAt: now.Add(-24 * time.Hour)}
	assert.True(t, exact.RetakeAllowed(quiz, now), "cooldown boundary is inclusive")

	noRetake := &Quiz{AllowRetake: false}
	assert.False(t, old.RetakeAllowed(noRetake, now))
}
