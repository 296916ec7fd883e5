package models

import "time"

type Stats struct {
	TotalUsers      int       `json:"total_users"`
	RegisteredUsers int       `json:"registered_users"`
	ActiveToday     int       `json:"active_today"`
	PendingWorks    int       `json:"pending_works"`
	PendingReviews  int       `json:"pending_reviews"`
	GeneratedAt     time.Time `json:"generated_at"`
}

type FullStats struct {
	Stats
	TotalSparks       float64           `json:"total_sparks"`
	QuizCompletions   int               `json:"quiz_completions"`
	MarathonsFinished int               `json:"marathons_finished"`
	Purchases         int               `json:"purchases"`
	TopUsers          []LeaderboardItem `json:"top_users"`
}

type UserReportRow struct {
	ID           int64     `bun:"id" json:"id"`
	FirstName    string    `bun:"first_name" json:"first_name"`
	Username     string    `bun:"username" json:"username"`
	RoleName     string    `bun:"role_name" json:"role_name"`
	Sparks       float64   `bun:"sparks" json:"sparks"`
	IsRegistered bool      `bun:"is_registered" json:"is_registered"`
	LastActiveAt time.Time `bun:"last_active_at" json:"last_active_at"`
}
