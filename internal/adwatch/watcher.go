package adwatch

import (
	"context"
	"errors"
	"sync"

	"idlegrow/internal/models"
)

var ErrWatchInProgress = errors.New("ad watch already in progress")

// AdPresenter plays the ad itself. Implementations wrap whatever ad
// SDK the build ships with; tests stub it.
type AdPresenter interface {
	Show(ctx context.Context) error
}

// Events receives watcher lifecycle callbacks. Any field may be nil.
type Events struct {
	OnStart    func(reward models.AdReward)
	OnProgress func(attempt, maxAttempts int)
	OnResult   func(result Result)
}

// State mirrors what a UI needs to render the watch flow. The zero
// value is the idle state.
type State struct {
	Watching   bool `json:"watching"`
	Validating bool `json:"validating"`
	Attempt    int  `json:"attempt"`
}

// Watcher runs the full watch-then-validate flow for one player.
// Watch is single-flight: a second call while one is running fails
// fast instead of queueing, and the state always returns to idle when
// the flow ends, granted or not.
type Watcher struct {
	fetch     FetchFunc
	presenter AdPresenter
	events    Events
	opts      *PollOptions

	mu    sync.Mutex
	state State
}

func NewWatcher(fetch FetchFunc, presenter AdPresenter, events Events, opts *PollOptions) *Watcher {
	return &Watcher{fetch: fetch, presenter: presenter, events: events, opts: opts}
}

func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Watcher) Watch(ctx context.Context, reward models.AdReward) (Result, error) {
	w.mu.Lock()
	if w.state.Watching {
		w.mu.Unlock()
		return Result{}, ErrWatchInProgress
	}
	w.state = State{Watching: true}
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.state = State{}
		w.mu.Unlock()
	}()

	if w.events.OnStart != nil {
		w.events.OnStart(reward)
	}

	baseline, err := w.fetch(ctx)
	if err != nil {
		return Result{}, err
	}

	if err := w.presenter.Show(ctx); err != nil {
		return Result{}, err
	}

	w.mu.Lock()
	w.state.Validating = true
	w.mu.Unlock()

	opts := w.opts.withDefaults()
	opts.OnProgress = func(attempt, maxAttempts int) {
		w.mu.Lock()
		w.state.Attempt = attempt
		w.mu.Unlock()
		if w.events.OnProgress != nil {
			w.events.OnProgress(attempt, maxAttempts)
		}
	}

	result, err := PollForReward(ctx, reward, baseline, w.fetch, &opts)
	if err != nil {
		return Result{}, err
	}

	if w.events.OnResult != nil {
		w.events.OnResult(result)
	}

	return result, nil
}
