package models

import (
	"time"

	"github.com/uptrace/bun"
)

type MarathonTask struct {
	Day                int    `json:"day"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Tips               string `json:"tips"`
	RequiresSubmission bool   `json:"requires_submission"`
}

type Marathon struct {
	bun.BaseModel         `bun:"table:marathon"`
	ID                    int64          `bun:"id,pk,autoincrement" json:"id"`
	Title                 string         `bun:"title" json:"title"`
	Description           string         `bun:"description" json:"description"`
	DurationDays          int            `bun:"duration_days" json:"duration_days"`
	Tasks                 []MarathonTask `bun:"tasks,type:jsonb" json:"tasks"`
	SparksPerDay          float64        `bun:"sparks_per_day" json:"sparks_per_day"`
	SparksCompletionBonus float64        `bun:"sparks_completion_bonus" json:"sparks_completion_bonus"`
	Active                bool           `bun:"active" json:"active"`
	CreatedAt             time.Time      `bun:"created_at,default:current_timestamp" json:"created_at"`

	CurrentDay      int  `bun:"-" json:"current_day"`
	ProgressPercent int  `bun:"-" json:"progress_percent"`
	Completed       bool `bun:"-" json:"completed"`
	CanContinue     bool `bun:"-" json:"can_continue"`
}

func (m *Marathon) TaskForDay(day int) *MarathonTask {
	for i := range m.Tasks {
		if m.Tasks[i].Day == day {
			return &m.Tasks[i]
		}
	}
	return nil
}

type MarathonProgress struct {
	bun.BaseModel `bun:"table:marathon_progress"`
	ID            int64          `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64          `bun:"user_id" json:"user_id"`
	MarathonID    int64          `bun:"marathon_id" json:"marathon_id"`
	CurrentDay    int            `bun:"current_day" json:"current_day"`
	Submissions   map[int]string `bun:"submissions,type:jsonb" json:"submissions"`
	Completed     bool           `bun:"completed" json:"completed"`
	StartedAt     time.Time      `bun:"started_at" json:"started_at"`
	UpdatedAt     time.Time      `bun:"updated_at" json:"updated_at"`
}

// MarathonPercent is the share of days already submitted. The pointer sits on
// the next day to do, so day 1 of a 5-day marathon is 0%.
func MarathonPercent(currentDay, durationDays int) int {
	if durationDays <= 0 {
		return 0
	}
	pct := (currentDay - 1) * 100 / durationDays
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

type DaySubmission struct {
	UserID         int64  `json:"userId"`
	Day            int    `json:"day"`
	SubmissionText string `json:"submission_text"`
}

type DayResult struct {
	MarathonID int64   `json:"marathon_id"`
	Day        int     `json:"day"`
	CurrentDay int     `json:"current_day"`
	Completed  bool    `json:"completed"`
	Sparks     float64 `json:"sparks_earned"`
	Message    string  `json:"message"`
}
