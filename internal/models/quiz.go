package models

import (
	"math"
	"time"

	"github.com/uptrace/bun"
)

type QuizQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	bun.BaseModel      `bun:"table:quiz"`
	ID                 int64          `bun:"id,pk,autoincrement" json:"id"`
	Title              string         `bun:"title" json:"title"`
	Description        string         `bun:"description" json:"description"`
	Questions          []QuizQuestion `bun:"questions,type:jsonb" json:"questions"`
	SparksPerCorrect   float64        `bun:"sparks_per_correct" json:"sparks_per_correct"`
	SparksPerfectBonus float64        `bun:"sparks_perfect_bonus" json:"sparks_perfect_bonus"`
	AllowRetake        bool           `bun:"allow_retake" json:"allow_retake"`
	CooldownHours      int            `bun:"cooldown_hours" json:"cooldown_hours"`
	Active             bool           `bun:"active" json:"active"`
	CreatedAt          time.Time      `bun:"created_at,default:current_timestamp" json:"created_at"`

	Completed bool `bun:"-" json:"completed"`
	LastScore *int `bun:"-" json:"last_score,omitempty"`
	CanRetake bool `bun:"-" json:"can_retake"`
}

type QuizCompletion struct {
	bun.BaseModel `bun:"table:quiz_completion"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	QuizID        int64     `bun:"quiz_id" json:"quiz_id"`
	Score         int       `bun:"score" json:"score"`
	SparksEarned  float64   `bun:"sparks_earned" json:"sparks_earned"`
	Perfect       bool      `bun:"perfect" json:"perfect"`
	CompletedAt   time.Time `bun:"completed_at" json:"completed_at"`
}

// RetakeAllowed reports whether a new attempt is permitted given the quiz's
// retake policy and the elapsed cooldown since this completion.
func (c *QuizCompletion) RetakeAllowed(quiz *Quiz, now time.Time) bool {
	if c == nil {
		return true
	}
	if !quiz.AllowRetake {
		return false
	}
	cooldown := time.Duration(quiz.CooldownHours) * time.Hour
	return !now.Before(c.CompletedAt.Add(cooldown))
}

type QuestionResult struct {
	Question      string `json:"question"`
	YourAnswer    *int   `json:"your_answer"`
	CorrectAnswer int    `json:"correct_answer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
}

type QuizResult struct {
	QuizID       int64            `json:"quiz_id"`
	Results      []QuestionResult `json:"results"`
	Correct      int              `json:"correct"`
	Total        int              `json:"total"`
	Percent      int              `json:"percent"`
	SparksEarned float64          `json:"sparks_earned"`
	Perfect      bool             `json:"perfect"`
	Message      string           `json:"message"`
}

type QuizAnswers struct {
	UserID  int64 `json:"userId"`
	Answers []int `json:"answers"`
}

// ScoreQuiz grades a full answer set against the quiz. Missing or out-of-range
// answers count as incorrect. Pure: no clock, no store.
func ScoreQuiz(quiz *Quiz, answers []int) (int, []QuestionResult) {
	results := make([]QuestionResult, 0, len(quiz.Questions))
	correct := 0
	for i, q := range quiz.Questions {
		r := QuestionResult{
			Question:      q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if i < len(answers) && answers[i] >= 0 && answers[i] < len(q.Options) {
			a := answers[i]
			r.YourAnswer = &a
			r.Correct = a == q.CorrectAnswer
		}
		if r.Correct {
			correct++
		}
		results = append(results, r)
	}
	return correct, results
}

// ScorePercent guards the zero-question quiz: 0%, not a division by zero.
func ScorePercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
