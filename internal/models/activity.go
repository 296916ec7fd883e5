package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	ActivityRegistration     = "registration"
	ActivityQuizCompleted    = "quiz_completed"
	ActivityMarathonDay      = "marathon_day"
	ActivityMarathonFinished = "marathon_finished"
	ActivityInteractive      = "interactive"
	ActivityWorkApproved     = "work_approved"
	ActivityReviewApproved   = "review_approved"
	ActivityPurchase         = "purchase"
	ActivityBonusGift        = "bonus_gift"
)

// Activity is the append-only sparks audit log. Every balance change writes
// exactly one row here.
type Activity struct {
	bun.BaseModel `bun:"table:activity"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	Type          string    `bun:"type" json:"type"`
	SparksDelta   float64   `bun:"sparks_delta" json:"sparks_delta"`
	Description   string    `bun:"description" json:"description"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
