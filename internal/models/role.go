package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Capability is a feature button a role unlocks in the mini-app.
type Capability string

const (
	CapabilityQuizzes      Capability = "quizzes"
	CapabilityMarathons    Capability = "marathons"
	CapabilityInteractives Capability = "interactives"
	CapabilityShop         Capability = "shop"
	CapabilityPosts        Capability = "posts"
	CapabilityWorks        Capability = "works"
	CapabilityLeaderboard  Capability = "leaderboard"
)

func (c Capability) Valid() bool {
	switch c {
	case CapabilityQuizzes, CapabilityMarathons, CapabilityInteractives,
		CapabilityShop, CapabilityPosts, CapabilityWorks, CapabilityLeaderboard:
		return true
	default:
		return false
	}
}

func ValidCapabilities(caps []Capability) []Capability {
	out := []Capability{}
	seen := map[Capability]bool{}
	for _, c := range caps {
		if c.Valid() && !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	return out
}

type Role struct {
	bun.BaseModel `bun:"table:role"`
	ID            int64        `bun:"id,pk,autoincrement" json:"id"`
	Name          string       `bun:"name" json:"name"`
	Description   string       `bun:"description" json:"description"`
	Icon          string       `bun:"icon" json:"icon"`
	DisplayRank   int          `bun:"display_rank" json:"display_rank"`
	Active        bool         `bun:"active" json:"active"`
	Buttons       []Capability `bun:"buttons,type:jsonb" json:"buttons"`
	CreatedAt     time.Time    `bun:"created_at,default:current_timestamp" json:"created_at"`

	CharacterCount int `bun:"-" json:"character_count,omitempty"`
}
