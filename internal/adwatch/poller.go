package adwatch

import (
	"context"
	"time"

	"idlegrow/internal/models"
)

const (
	DefaultMaxAttempts = 40
	DefaultInterval    = 500 * time.Millisecond
)

// FetchFunc returns a fresh balance snapshot for the polling player.
type FetchFunc func(ctx context.Context) (models.Balances, error)

type PollOptions struct {
	MaxAttempts int
	Interval    time.Duration
	// OnProgress is invoked once per attempt with a strictly
	// increasing attempt number, 1-based.
	OnProgress func(attempt, maxAttempts int)
}

func (o *PollOptions) withDefaults() PollOptions {
	out := PollOptions{MaxAttempts: DefaultMaxAttempts, Interval: DefaultInterval}
	if o == nil {
		return out
	}
	if o.MaxAttempts > 0 {
		out.MaxAttempts = o.MaxAttempts
	}
	if o.Interval > 0 {
		out.Interval = o.Interval
	}
	out.OnProgress = o.OnProgress
	return out
}

// PollForReward refetches balances until the reward validates or the
// attempt budget runs out. Fetch errors consume an attempt instead of
// aborting, since the server may simply not have applied the grant yet.
// The only error returned is the context's, so a cancelled watch stops
// between attempts.
func PollForReward(ctx context.Context, reward models.AdReward, baseline models.Balances, fetch FetchFunc, opts *PollOptions) (Result, error) {
	o := opts.withDefaults()

	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		if o.OnProgress != nil {
			o.OnProgress(attempt, o.MaxAttempts)
		}

		current, err := fetch(ctx)
		if err == nil {
			result := Validate(reward, baseline, current)
			if result.Granted {
				return result, nil
			}
		}

		if attempt == o.MaxAttempts {
			break
		}

		timer := time.NewTimer(o.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}

	return Result{}, nil
}
