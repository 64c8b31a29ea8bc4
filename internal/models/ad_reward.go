package models

import (
	"github.com/uptrace/bun"
)

type RewardType string

const (
	RewardCoins       RewardType = "coins"
	RewardGems        RewardType = "gems"
	RewardCoinBoost   RewardType = "coin_boost"
	RewardGemBoost    RewardType = "gem_boost"
	RewardGrowthSpeed RewardType = "growth_speed"
	RewardGrowthBoost RewardType = "growth_boost"
)

func (t RewardType) Valid() bool {
	switch t {
	case RewardCoins, RewardGems, RewardCoinBoost, RewardGemBoost, RewardGrowthSpeed, RewardGrowthBoost:
		return true
	}
	return false
}

// IsBoost reports whether the reward is applied as a timed effect
// instead of a balance change.
func (t RewardType) IsBoost() bool {
	switch t {
	case RewardCoinBoost, RewardGemBoost, RewardGrowthSpeed, RewardGrowthBoost:
		return true
	}
	return false
}

type AdReward struct {
	bun.BaseModel   `bun:"table:ad_reward"`
	ID              int        `bun:"id,pk,autoincrement" json:"id"`
	Type            RewardType `bun:"type" json:"type"`
	Amount          int64      `bun:"amount" json:"amount"`
	DurationMinutes int        `bun:"duration_minutes" json:"duration_minutes,omitempty"`
	Description     string     `bun:"description" json:"description"`
	Emoji           string     `bun:"emoji" json:"emoji"`
	MinLevel        int        `bun:"min_level,default:1" json:"min_level"`
	Position        int        `bun:"position" json:"position"`
	Active          bool       `bun:"active,default:true" json:"-"`
}

// DefaultAdRewards is served whenever the catalog cannot be read from
// the database.
var DefaultAdRewards = []AdReward{
	{ID: 1, Type: RewardCoins, Amount: 500, Description: "Pocket money", Emoji: "🪙", MinLevel: 1, Position: 1},
	{ID: 2, Type: RewardGems, Amount: 5, Description: "A few gems", Emoji: "💎", MinLevel: 1, Position: 2},
	{ID: 3, Type: RewardGrowthSpeed, Amount: 50, DurationMinutes: 30, Description: "Plants grow 50% faster", Emoji: "🌱", MinLevel: 2, Position: 3},
	{ID: 4, Type: RewardCoinBoost, Amount: 100, DurationMinutes: 60, Description: "Double coins from harvests", Emoji: "🤑", MinLevel: 3, Position: 4},
	{ID: 5, Type: RewardGemBoost, Amount: 50, DurationMinutes: 60, Description: "+50% gems from drops", Emoji: "✨", MinLevel: 5, Position: 5},
}

// ScaledAmount applies the SSV duration tiers to a currency amount.
// Boost rewards keep their nominal amount regardless of ad length.
func (r AdReward) ScaledAmount(adDurationSecs int) int64 {
	if r.Type.IsBoost() {
		return r.Amount
	}
	return ScaleByDuration(r.Amount, adDurationSecs)
}

func ScaleByDuration(amount int64, adDurationSecs int) int64 {
	switch {
	case adDurationSecs >= 60:
		return amount * 2
	case adDurationSecs >= 30:
		return amount * 3 / 2
	case adDurationSecs >= 15:
		return amount
	default:
		return amount / 2
	}
}
