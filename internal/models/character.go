package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

type BonusType string

const (
	BonusPercent          BonusType = "percent_bonus"
	BonusRandomGift       BonusType = "random_gift"
	BonusForgiveness      BonusType = "forgiveness"
	BonusSeries           BonusType = "series_bonus"
	BonusSecretAdvice     BonusType = "secret_advice"
	BonusPhoto            BonusType = "photo_bonus"
	BonusWeeklySurprise   BonusType = "weekly_surprise"
	BonusMiniQuest        BonusType = "mini_quest"
	BonusQuizHint         BonusType = "quiz_hint"
	BonusFactStar         BonusType = "fact_star"
	BonusStreakMultiplier BonusType = "streak_multiplier"
)

func (b BonusType) Valid() bool {
	switch b {
	case BonusPercent, BonusRandomGift, BonusForgiveness, BonusSeries,
		BonusSecretAdvice, BonusPhoto, BonusWeeklySurprise, BonusMiniQuest,
		BonusQuizHint, BonusFactStar, BonusStreakMultiplier:
		return true
	default:
		return false
	}
}

// ParseBonusRange reads a bonus value like "10" or "5-15" into a numeric
// range. A single number yields min == max; garbage yields 0, 0.
func ParseBonusRange(value string) (float64, float64) {
	parts := strings.SplitN(strings.TrimSpace(value), "-", 2)
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0
	}
	if len(parts) == 1 {
		return min, min
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || max < min {
		return min, min
	}
	return min, max
}

type Character struct {
	bun.BaseModel `bun:"table:character"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	RoleID        int64     `bun:"role_id" json:"role_id"`
	Name          string    `bun:"name" json:"name"`
	Description   string    `bun:"description" json:"description"`
	BonusType     BonusType `bun:"bonus_type" json:"bonus_type"`
	BonusValue    string    `bun:"bonus_value" json:"bonus_value"`
	Active        bool      `bun:"active" json:"active"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
