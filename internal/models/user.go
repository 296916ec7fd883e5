package models

import (
	"time"

	"github.com/uptrace/bun"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	bun.BaseModel `bun:"table:app_user"`
	ID            int64      `bun:"id,pk" json:"id"`
	FirstName     string     `bun:"first_name" json:"first_name"`
	Username      string     `bun:"username" json:"username"`
	RoleID        *int64     `bun:"role_id" json:"role_id"`
	CharacterID   *int64     `bun:"character_id" json:"character_id"`
	Sparks        float64    `bun:"sparks" json:"sparks"`
	Level         string     `bun:"level" json:"level"`
	IsRegistered  bool       `bun:"is_registered" json:"is_registered"`
	RegisteredAt  *time.Time `bun:"registered_at" json:"registered_at"`
	LastActiveAt  time.Time  `bun:"last_active_at" json:"last_active_at"`
	Status        UserStatus `bun:"status" json:"status"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at" json:"updated_at"`

	RoleName      string `bun:"-" json:"role_name,omitempty"`
	CharacterName string `bun:"-" json:"character_name,omitempty"`
	IsNewUser     bool   `bun:"-" json:"is_new_user"`
}

// UserFromAuth only use in middleware
type UserFromAuth struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	IsBot     bool   `json:"is_bot"`
	PhotoURL  string `json:"photo_url"`
}

// Levels are display labels derived from lifetime sparks earnings.
type LevelThreshold struct {
	MinSparks float64
	Label     string
}

var LevelThresholds = []LevelThreshold{
	{0, "Новичок"},
	{100, "Ученик"},
	{300, "Мастер"},
	{700, "Вдохновитель"},
}

func LevelForSparks(total float64) string {
	label := LevelThresholds[0].Label
	for _, t := range LevelThresholds {
		if total >= t.MinSparks {
			label = t.Label
		}
	}
	return label
}
