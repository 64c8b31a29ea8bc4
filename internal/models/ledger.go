package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CoinEntry and GemEntry are insert-only ledger rows. Balances are the
// SUM over a user's rows; the (user_id, action) unique index makes
// replayed grants no-ops.
type CoinEntry struct {
	bun.BaseModel `bun:"table:coin_ledger"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	Coins         int64     `bun:"coins" json:"coins"`
	Action        string    `bun:"action" json:"action"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type GemEntry struct {
	bun.BaseModel `bun:"table:gem_ledger"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	Gems          int64     `bun:"gems" json:"gems"`
	Action        string    `bun:"action" json:"action"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type TotalCoins struct {
	UserID     int64 `json:"user_id"`
	TotalCoins int64 `json:"total_coins"`
}

type TotalGems struct {
	UserID    int64 `json:"user_id"`
	TotalGems int64 `json:"total_gems"`
}

type Balances struct {
	Coins int64 `json:"coins"`
	Gems  int64 `json:"gems"`
}
