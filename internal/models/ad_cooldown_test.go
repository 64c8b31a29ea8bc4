package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdCooldownStateDerivation(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	today := now.UTC().Format(DailyResetLayout)

	t.Run("no record is available", func(t *testing.T) {
		var record *AdCooldown
		assert.Equal(t, AdStateAvailable, record.State(now, MaxDailyAds, AdCooldownWindow))
		assert.Equal(t, 0, record.EffectiveCount(now))
		assert.Nil(t, record.AvailableAt(now, MaxDailyAds, AdCooldownWindow))
	})

	t.Run("under cap and past cooldown", func(t *testing.T) {
		watched := now.Add(-3 * time.Hour)
		record := &AdCooldown{UserID: 1, LastAdWatched: &watched, DailyCount: 2, DailyResetDate: today}
		assert.Equal(t, AdStateAvailable, record.State(now, MaxDailyAds, AdCooldownWindow))
	})

	t.Run("within cooldown window", func(t *testing.T) {
		watched := now.Add(-30 * time.Minute)
		record := &AdCooldown{UserID: 1, LastAdWatched: &watched, DailyCount: 2, DailyResetDate: today}
		assert.Equal(t, AdStateOnCooldown, record.State(now, MaxDailyAds, AdCooldownWindow))

		at := record.AvailableAt(now, MaxDailyAds, AdCooldownWindow)
		require.NotNil(t, at)
		assert.Equal(t, watched.Add(AdCooldownWindow), *at)
	})

	t.Run("count at cap wins over cooldown", func(t *testing.T) {
		watched := now.Add(-10 * time.Minute)
		record := &AdCooldown{UserID: 1, LastAdWatched: &watched, DailyCount: MaxDailyAds, DailyResetDate: today}
		assert.Equal(t, AdStateLimitReached, record.State(now, MaxDailyAds, AdCooldownWindow))

		at := record.AvailableAt(now, MaxDailyAds, AdCooldownWindow)
		require.NotNil(t, at)
		assert.True(t, at.After(now))
		assert.Equal(t, "2025-06-11", at.UTC().Format(DailyResetLayout))
	})

	t.Run("count one below cap is not limited", func(t *testing.T) {
		watched := now.Add(-3 * time.Hour)
		record := &AdCooldown{UserID: 1, LastAdWatched: &watched, DailyCount: MaxDailyAds - 1, DailyResetDate: today}
		assert.Equal(t, AdStateAvailable, record.State(now, MaxDailyAds, AdCooldownWindow))
	})
}

func TestAdCooldownStaleDateReadsAsZero(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 30, 0, 0, time.UTC)
	watched := now.Add(-4 * time.Hour)

	// Yesterday's maxed-out record: the count must derive to zero
	// without any write.
	record := &AdCooldown{
		UserID:         1,
		LastAdWatched:  &watched,
		DailyCount:     MaxDailyAds,
		DailyResetDate: "2025-06-09",
	}

	assert.Equal(t, 0, record.EffectiveCount(now))
	assert.Equal(t, AdStateAvailable, record.State(now, MaxDailyAds, AdCooldownWindow))
	assert.Equal(t, MaxDailyAds, record.DailyCount, "derivation must not mutate the record")
}

func TestAdCooldownBoundaryExactWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	watched := now.Add(-AdCooldownWindow)

	record := &AdCooldown{UserID: 1, LastAdWatched: &watched, DailyCount: 1, DailyResetDate: now.UTC().Format(DailyResetLayout)}
	assert.False(t, record.OnCooldown(now, AdCooldownWindow), "cooldown ends exactly at the window boundary")
}
