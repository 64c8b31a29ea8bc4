package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComposeMultipliers(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Minute)

	t.Run("empty list is identity", func(t *testing.T) {
		m := ComposeMultipliers(nil, now)
		assert.Equal(t, Multipliers{Coin: 1, Gem: 1, Growth: 1}, m)
	})

	t.Run("effects stack additively", func(t *testing.T) {
		effects := []ActiveEffect{
			{EffectType: RewardGrowthSpeed, EffectValue: 50, ExpiresAt: later},
			{EffectType: RewardGrowthBoost, EffectValue: 50, ExpiresAt: later},
			{EffectType: RewardCoinBoost, EffectValue: 100, ExpiresAt: later},
		}

		m := ComposeMultipliers(effects, now)
		assert.InDelta(t, 2.0, m.Growth, 1e-9)
		assert.InDelta(t, 2.0, m.Coin, 1e-9)
		assert.InDelta(t, 1.0, m.Gem, 1e-9)
	})

	t.Run("expired effects are skipped", func(t *testing.T) {
		effects := []ActiveEffect{
			{EffectType: RewardGemBoost, EffectValue: 50, ExpiresAt: earlier},
			{EffectType: RewardGemBoost, EffectValue: 25, ExpiresAt: later},
		}

		m := ComposeMultipliers(effects, now)
		assert.InDelta(t, 1.25, m.Gem, 1e-9)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		e := ActiveEffect{EffectType: RewardCoinBoost, EffectValue: 100, ExpiresAt: now}
		assert.True(t, e.Expired(now))
	})
}
