package adwatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"idlegrow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPresenter struct {
	shown   int
	err     error
	release chan struct{}
}

func (p *stubPresenter) Show(ctx context.Context) error {
	p.shown++
	if p.release != nil {
		<-p.release
	}
	return p.err
}

func balanceSequence(balances ...models.Balances) FetchFunc {
	i := 0
	var mu sync.Mutex
	return func(ctx context.Context) (models.Balances, error) {
		mu.Lock()
		defer mu.Unlock()
		b := balances[i]
		if i < len(balances)-1 {
			i++
		}
		return b, nil
	}
}

func TestWatcherHappyPath(t *testing.T) {
	reward := models.AdReward{Type: models.RewardCoins, Amount: 500}
	fetch := balanceSequence(
		models.Balances{Coins: 100}, // baseline
		models.Balances{Coins: 100}, // first poll, not landed yet
		models.Balances{Coins: 600},
	)

	var gotResult *Result
	presenter := &stubPresenter{}
	w := NewWatcher(fetch, presenter, Events{
		OnResult: func(r Result) { gotResult = &r },
	}, fastOpts(10))

	result, err := w.Watch(context.Background(), reward)
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, int64(500), result.GainedAmount)
	assert.Equal(t, 1, presenter.shown)

	require.NotNil(t, gotResult)
	assert.Equal(t, result, *gotResult)
}

func TestWatcherSingleFlight(t *testing.T) {
	reward := models.AdReward{Type: models.RewardCoins, Amount: 500}
	fetch := balanceSequence(models.Balances{Coins: 100}, models.Balances{Coins: 600})

	presenter := &stubPresenter{release: make(chan struct{})}
	w := NewWatcher(fetch, presenter, Events{}, fastOpts(5))

	done := make(chan struct{})
	go func() {
		defer close(done)
		//nolint:errcheck
		w.Watch(context.Background(), reward)
	}()

	// Wait for the first watch to be inside the presenter.
	require.Eventually(t, func() bool {
		return w.State().Watching
	}, time.Second, time.Millisecond)

	_, err := w.Watch(context.Background(), reward)
	assert.ErrorIs(t, err, ErrWatchInProgress)
	assert.Equal(t, 1, presenter.shown, "second watch must not reach the presenter")

	close(presenter.release)
	<-done
}

func TestWatcherStateResetsAfterEveryOutcome(t *testing.T) {
	reward := models.AdReward{Type: models.RewardCoins, Amount: 500}

	t.Run("after grant", func(t *testing.T) {
		fetch := balanceSequence(models.Balances{Coins: 100}, models.Balances{Coins: 600})
		w := NewWatcher(fetch, &stubPresenter{}, Events{}, fastOpts(5))

		_, err := w.Watch(context.Background(), reward)
		require.NoError(t, err)
		assert.Equal(t, State{}, w.State())
	})

	t.Run("after exhausted polling", func(t *testing.T) {
		fetch := balanceSequence(models.Balances{Coins: 100})
		w := NewWatcher(fetch, &stubPresenter{}, Events{}, fastOpts(3))

		result, err := w.Watch(context.Background(), reward)
		require.NoError(t, err)
		assert.False(t, result.Granted)
		assert.Equal(t, State{}, w.State())
	})

	t.Run("after presenter failure", func(t *testing.T) {
		fetch := balanceSequence(models.Balances{Coins: 100})
		w := NewWatcher(fetch, &stubPresenter{err: errors.New("ad failed to load")}, Events{}, fastOpts(3))

		_, err := w.Watch(context.Background(), reward)
		assert.Error(t, err)
		assert.Equal(t, State{}, w.State())

		// And the watcher is reusable afterwards.
		fetch2 := balanceSequence(models.Balances{Coins: 100}, models.Balances{Coins: 600})
		w2 := NewWatcher(fetch2, &stubPresenter{}, Events{}, fastOpts(5))
		result, err := w2.Watch(context.Background(), reward)
		require.NoError(t, err)
		assert.True(t, result.Granted)
	})
}

func TestWatcherReportsProgressToEvents(t *testing.T) {
	reward := models.AdReward{Type: models.RewardCoins, Amount: 500}
	fetch := balanceSequence(models.Balances{Coins: 100})

	var attempts []int
	w := NewWatcher(fetch, &stubPresenter{}, Events{
		OnProgress: func(attempt, maxAttempts int) { attempts = append(attempts, attempt) },
	}, fastOpts(4))

	_, err := w.Watch(context.Background(), reward)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, attempts)
}
