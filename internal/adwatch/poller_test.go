package adwatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"idlegrow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOpts(maxAttempts int) *PollOptions {
	return &PollOptions{MaxAttempts: maxAttempts, Interval: time.Millisecond}
}

func TestPollForRewardGrantedMidway(t *testing.T) {
	reward := models.AdReward{Type: models.RewardCoins, Amount: 500}
	baseline := models.Balances{Coins: 100}

	fetches := 0
	fetch := func(ctx context.Context) (models.Balances, error) {
		fetches++
		if fetches >= 3 {
			return models.Balances{Coins: 600}, nil
		}
		return baseline, nil
	}

	result, err := PollForReward(context.Background(), reward, baseline, fetch, fastOpts(10))
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, int64(500), result.GainedAmount)
	assert.Equal(t, 3, fetches, "polling must stop on the first validated fetch")
}

func TestPollForRewardExhaustsAttemptBudget(t *testing.T) {
	reward := models.AdReward{Type: models.RewardCoins, Amount: 500}
	baseline := models.Balances{Coins: 100}

	fetches := 0
	fetch := func(ctx context.Context) (models.Balances, error) {
		fetches++
		return baseline, nil
	}

	result, err := PollForReward(context.Background(), reward, baseline, fetch, fastOpts(7))
	require.NoError(t, err)
	assert.False(t, result.Granted, "timeout yields a binary not-granted, not an error")
	assert.Equal(t, 7, fetches, "exactly maxAttempts fetches, never more")
}

func TestPollForRewardProgressStrictlyIncreases(t *testing.T) {
	reward := models.AdReward{Type: models.RewardCoins, Amount: 500}
	baseline := models.Balances{}

	var attempts []int
	opts := fastOpts(5)
	opts.OnProgress = func(attempt, maxAttempts int) {
		attempts = append(attempts, attempt)
		assert.Equal(t, 5, maxAttempts)
	}

	fetch := func(ctx context.Context) (models.Balances, error) {
		return baseline, nil
	}

	_, err := PollForReward(context.Background(), reward, baseline, fetch, opts)
	require.NoError(t, err)

	require.Len(t, attempts, 5)
	for i, attempt := range attempts {
		assert.Equal(t, i+1, attempt)
	}
}

func TestPollForRewardFetchErrorsConsumeAttempts(t *testing.T) {
	reward := models.AdReward{Type: models.RewardCoins, Amount: 500}

	fetches := 0
	fetch := func(ctx context.Context) (models.Balances, error) {
		fetches++
		return models.Balances{}, errors.New("transient")
	}

	result, err := PollForReward(context.Background(), reward, models.Balances{}, fetch, fastOpts(4))
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, 4, fetches)
}

func TestPollForRewardContextCancellation(t *testing.T) {
	reward := models.AdReward{Type: models.RewardCoins, Amount: 500}
	baseline := models.Balances{}

	ctx, cancel := context.WithCancel(context.Background())

	fetches := 0
	fetch := func(ctx context.Context) (models.Balances, error) {
		fetches++
		if fetches == 2 {
			cancel()
		}
		return baseline, nil
	}

	opts := &PollOptions{MaxAttempts: 40, Interval: 10 * time.Millisecond}
	_, err := PollForReward(ctx, reward, baseline, fetch, opts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, fetches, 5, "cancellation must stop the loop promptly")
}

func TestPollOptionsDefaults(t *testing.T) {
	var opts *PollOptions
	o := opts.withDefaults()
	assert.Equal(t, DefaultMaxAttempts, o.MaxAttempts)
	assert.Equal(t, DefaultInterval, o.Interval)
}
