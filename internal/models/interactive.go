package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Interactive is a single-shot question, unlike the multi-question Quiz.
type Interactive struct {
	bun.BaseModel `bun:"table:interactive"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Title         string    `bun:"title" json:"title"`
	Question      string    `bun:"question" json:"question"`
	Answer        string    `bun:"answer" json:"-"`
	Sparks        float64   `bun:"sparks" json:"sparks"`
	Active        bool      `bun:"active" json:"active"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`

	Done bool `bun:"-" json:"done"`
}

// AcceptsAnswer matches case-insensitively; an empty expected answer accepts
// anything non-empty (free-form tasks).
func (i *Interactive) AcceptsAnswer(answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	if i.Answer == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(i.Answer), answer)
}

type InteractiveCompletion struct {
	bun.BaseModel `bun:"table:interactive_completion"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	InteractiveID int64     `bun:"interactive_id" json:"interactive_id"`
	Answer        string    `bun:"answer" json:"answer"`
	Correct       bool      `bun:"correct" json:"correct"`
	SparksEarned  float64   `bun:"sparks_earned" json:"sparks_earned"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type InteractiveAnswer struct {
	UserID int64  `json:"userId"`
	Answer string `json:"answer"`
}
