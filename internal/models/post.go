package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ChannelPost struct {
	bun.BaseModel `bun:"table:channel_post"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Title         string    `bun:"title" json:"title"`
	Content       string    `bun:"content" json:"content"`
	URL           string    `bun:"url" json:"url"`
	PublishedAt   time.Time `bun:"published_at" json:"published_at"`
	Active        bool      `bun:"active" json:"active"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`

	Reviewed bool `bun:"-" json:"reviewed"`
}

type ReviewRequest struct {
	UserID     int64  `json:"userId"`
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
}
