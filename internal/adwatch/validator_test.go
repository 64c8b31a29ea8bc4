package adwatch

import (
	"testing"

	"idlegrow/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCurrencyRewards(t *testing.T) {
	coins := models.AdReward{Type: models.RewardCoins, Amount: 500}
	gems := models.AdReward{Type: models.RewardGems, Amount: 5}

	t.Run("coin gain validates with the actual delta", func(t *testing.T) {
		result := Validate(coins, models.Balances{Coins: 100}, models.Balances{Coins: 1100})
		assert.True(t, result.Granted)
		assert.Equal(t, int64(1000), result.GainedAmount)
	})

	t.Run("unchanged balance does not validate", func(t *testing.T) {
		result := Validate(coins, models.Balances{Coins: 100}, models.Balances{Coins: 100})
		assert.False(t, result.Granted)
		assert.Zero(t, result.GainedAmount)
	})

	t.Run("decreased balance does not validate", func(t *testing.T) {
		result := Validate(coins, models.Balances{Coins: 100}, models.Balances{Coins: 50})
		assert.False(t, result.Granted)
	})

	t.Run("gem reward checks the gem balance only", func(t *testing.T) {
		result := Validate(gems, models.Balances{Coins: 100, Gems: 10}, models.Balances{Coins: 100, Gems: 15})
		assert.True(t, result.Granted)
		assert.Equal(t, int64(5), result.GainedAmount)

		// A coin movement alone must not validate a gem reward.
		result = Validate(gems, models.Balances{Coins: 100, Gems: 10}, models.Balances{Coins: 900, Gems: 10})
		assert.False(t, result.Granted)
	})
}

func TestValidateBoostReward(t *testing.T) {
	boost := models.AdReward{Type: models.RewardGrowthSpeed, Amount: 50}

	// Boosts never move balances; a successful fetch counts as granted
	// with the nominal amount.
	result := Validate(boost, models.Balances{Coins: 100}, models.Balances{Coins: 100})
	assert.True(t, result.Granted)
	assert.Equal(t, int64(50), result.GainedAmount)
}
