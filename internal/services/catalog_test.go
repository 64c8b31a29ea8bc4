package services

import (
	"testing"

	"idlegrow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRewardsForLevel(t *testing.T) {
	t.Run("level 1 sees only unlocked offers", func(t *testing.T) {
		rewards := defaultRewardsForLevel(1)
		require.NotEmpty(t, rewards)
		for _, r := range rewards {
			assert.LessOrEqual(t, r.MinLevel, 1)
		}
	})

	t.Run("high level sees the whole catalog", func(t *testing.T) {
		rewards := defaultRewardsForLevel(99)
		assert.Len(t, rewards, len(models.DefaultAdRewards))
	})

	t.Run("fallback offers keep their ids", func(t *testing.T) {
		// The grant path looks rewards up by id, so the static fallback
		// must carry them too.
		for _, r := range defaultRewardsForLevel(99) {
			assert.NotZero(t, r.ID)
		}
	})

	t.Run("boost offers unlock later than currency offers", func(t *testing.T) {
		level1 := defaultRewardsForLevel(1)
		for _, r := range level1 {
			assert.False(t, r.Type.IsBoost())
		}
	})
}
