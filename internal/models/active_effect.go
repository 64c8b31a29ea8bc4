package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ActiveEffect is a timed multiplier. Rows are insert-only; expiry is a
// timestamp comparison at read time, never an update.
type ActiveEffect struct {
	bun.BaseModel `bun:"table:active_effect"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64      `bun:"user_id" json:"user_id"`
	EffectType    RewardType `bun:"effect_type" json:"effect_type"`
	EffectValue   int64      `bun:"effect_value" json:"effect_value"`
	ExpiresAt     time.Time  `bun:"expires_at" json:"expires_at"`
	Source        string     `bun:"source" json:"source"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
}

func (e *ActiveEffect) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Multipliers composes coin/gem/growth factors from live effects.
// Each effect value is a percentage; factors stack additively, so two
// +50% growth effects yield ×2.0.
type Multipliers struct {
	Coin   float64 `json:"coin"`
	Gem    float64 `json:"gem"`
	Growth float64 `json:"growth"`
}

func ComposeMultipliers(effects []ActiveEffect, now time.Time) Multipliers {
	m := Multipliers{Coin: 1, Gem: 1, Growth: 1}
	for _, e := range effects {
		if e.Expired(now) {
			continue
		}
		v := float64(e.EffectValue) / 100
		switch e.EffectType {
		case RewardCoinBoost:
			m.Coin += v
		case RewardGemBoost:
			m.Gem += v
		case RewardGrowthSpeed, RewardGrowthBoost:
			m.Growth += v
		}
	}
	return m
}
