package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	default:
		return false
	}
}

// Terminal statuses never transition again.
func (s ModerationStatus) Terminal() bool {
	return s == ModerationApproved || s == ModerationRejected
}

// Decision statuses are the ones an admin may set.
func (s ModerationStatus) Decision() bool {
	return s.Terminal()
}

type ModerationKind string

const (
	ModerationKindWork   ModerationKind = "work"
	ModerationKindReview ModerationKind = "review"
)

type Work struct {
	bun.BaseModel    `bun:"table:user_work"`
	ID               int64            `bun:"id,pk,autoincrement" json:"id"`
	UserID           int64            `bun:"user_id" json:"user_id"`
	Title            string           `bun:"title" json:"title"`
	Description      string           `bun:"description" json:"description"`
	ImageURL         string           `bun:"image_url" json:"image_url"`
	Category         string           `bun:"category" json:"category"`
	Status           ModerationStatus `bun:"status" json:"status"`
	ModeratorID      *int64           `bun:"moderator_id" json:"moderator_id"`
	ModeratorComment string           `bun:"moderator_comment" json:"moderator_comment"`
	ModeratedAt      *time.Time       `bun:"moderated_at" json:"moderated_at"`
	CreatedAt        time.Time        `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type PostReview struct {
	bun.BaseModel    `bun:"table:post_review"`
	ID               int64            `bun:"id,pk,autoincrement" json:"id"`
	UserID           int64            `bun:"user_id" json:"user_id"`
	PostID           int64            `bun:"post_id" json:"post_id"`
	ReviewText       string           `bun:"review_text" json:"review_text"`
	Rating           int              `bun:"rating" json:"rating"`
	Status           ModerationStatus `bun:"status" json:"status"`
	ModeratorID      *int64           `bun:"moderator_id" json:"moderator_id"`
	ModeratorComment string           `bun:"moderator_comment" json:"moderator_comment"`
	ModeratedAt      *time.Time       `bun:"moderated_at" json:"moderated_at"`
	CreatedAt        time.Time        `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type ModerationDecision struct {
	Status       ModerationStatus `json:"status"`
	AdminComment string           `json:"admin_comment"`
}
