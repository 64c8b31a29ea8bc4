package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleByDuration(t *testing.T) {
	cases := []struct {
		name     string
		duration int
		want     int64
	}{
		{"full minute doubles", 60, 2000},
		{"above a minute doubles", 90, 2000},
		{"half minute", 30, 1500},
		{"between tiers rounds to lower tier", 45, 1500},
		{"fifteen seconds is nominal", 15, 1000},
		{"twenty nine seconds is nominal", 29, 1000},
		{"short watch halves", 14, 500},
		{"zero halves", 0, 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScaleByDuration(1000, tc.duration))
		})
	}
}

func TestScaledAmountBoostIgnoresDuration(t *testing.T) {
	boost := AdReward{Type: RewardGrowthSpeed, Amount: 50, DurationMinutes: 30}
	assert.Equal(t, int64(50), boost.ScaledAmount(5))
	assert.Equal(t, int64(50), boost.ScaledAmount(120))

	coins := AdReward{Type: RewardCoins, Amount: 500}
	assert.Equal(t, int64(1000), coins.ScaledAmount(60))
}

func TestRewardTypeClassification(t *testing.T) {
	assert.True(t, RewardCoinBoost.IsBoost())
	assert.True(t, RewardGrowthSpeed.IsBoost())
	assert.False(t, RewardCoins.IsBoost())
	assert.False(t, RewardGems.IsBoost())

	assert.True(t, RewardGems.Valid())
	assert.False(t, RewardType("jackpot").Valid())
}
