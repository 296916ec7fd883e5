package models

type LeaderboardItem struct {
	UserId    int64   `json:"user_id"`
	Score     float64 `json:"score"`
	Rank      int     `json:"rank"`
	Username  string  `json:"username,omitempty"`
	FirstName string  `json:"first_name,omitempty"`
}
