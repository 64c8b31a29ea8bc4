package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	PURCHASE_STATUS_PENDING   = "pending"
	PURCHASE_STATUS_COMPLETED = "completed"
)

// GemPurchase tracks one Stripe checkout session. verify-payment flips
// status exactly once, which makes the grant idempotent.
type GemPurchase struct {
	bun.BaseModel   `bun:"table:gem_purchase"`
	ID              string    `bun:"id,pk" json:"id"`
	UserID          int64     `bun:"user_id" json:"user_id"`
	ItemSlug        string    `bun:"item_slug" json:"item_slug"`
	GemAmount       int64     `bun:"gem_amount" json:"gem_amount"`
	PriceUSDCents   int64     `bun:"price_usd_cents" json:"price_usd_cents"`
	GrantsPremium   bool      `bun:"grants_premium" json:"grants_premium"`
	StripeSessionID string    `bun:"stripe_session_id" json:"-"`
	Status          string    `bun:"status,default:'pending'" json:"status"`
	CreatedAt       time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at" json:"updated_at"`
}

type StoreItem struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Emoji         string `json:"emoji"`
	GemAmount     int64  `json:"gem_amount"`
	PriceUSDCents int64  `json:"price_usd_cents"`
	GrantsPremium bool   `json:"grants_premium"`
}

var StoreItems = []StoreItem{
	{Slug: "gems-small", Name: "Handful of Gems", Emoji: "💎", GemAmount: 100, PriceUSDCents: 199},
	{Slug: "gems-medium", Name: "Bag of Gems", Emoji: "💰", GemAmount: 550, PriceUSDCents: 899},
	{Slug: "gems-large", Name: "Chest of Gems", Emoji: "🧰", GemAmount: 1200, PriceUSDCents: 1799},
	{Slug: "premium", Name: "Premium Gardener", Emoji: "👑", GemAmount: 200, PriceUSDCents: 499, GrantsPremium: true},
}

func FindStoreItem(slug string) *StoreItem {
	for i := range StoreItems {
		if StoreItems[i].Slug == slug {
			return &StoreItems[i]
		}
	}
	return nil
}
