package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ShopItemType string

const (
	ShopItemChecklist ShopItemType = "checklist"
	ShopItemTemplate  ShopItemType = "template"
	ShopItemGuide     ShopItemType = "guide"
	ShopItemSticker   ShopItemType = "sticker_pack"
	ShopItemOther     ShopItemType = "other"
)

func (t ShopItemType) Valid() bool {
	switch t {
	case ShopItemChecklist, ShopItemTemplate, ShopItemGuide, ShopItemSticker, ShopItemOther:
		return true
	default:
		return false
	}
}

type ShopItem struct {
	bun.BaseModel `bun:"table:shop_item"`
	ID            int64        `bun:"id,pk,autoincrement" json:"id"`
	Title         string       `bun:"title" json:"title"`
	Description   string       `bun:"description" json:"description"`
	Price         float64      `bun:"price" json:"price"`
	Type          ShopItemType `bun:"type" json:"type"`
	Payload       string       `bun:"payload" json:"-"`
	Active        bool         `bun:"active" json:"active"`
	CreatedAt     time.Time    `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type Purchase struct {
	bun.BaseModel `bun:"table:purchase"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	ReceiptID     string    `bun:"receipt_id" json:"receipt_id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	ItemID        int64     `bun:"item_id" json:"item_id"`
	PricePaid     float64   `bun:"price_paid" json:"price_paid"`
	Delivered     bool      `bun:"delivered" json:"delivered"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`

	ItemTitle string `bun:"-" json:"item_title,omitempty"`
	Payload   string `bun:"-" json:"payload,omitempty"`
}

type PurchaseRequest struct {
	UserID int64 `json:"userId"`
	ItemID int64 `json:"itemId"`
}
