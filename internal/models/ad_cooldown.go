package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	MaxDailyAds      = 5
	AdCooldownWindow = 2 * time.Hour

	DailyResetLayout = "2006-01-02"
)

type AdLimitState string

const (
	AdStateAvailable    AdLimitState = "available"
	AdStateOnCooldown   AdLimitState = "on_cooldown"
	AdStateLimitReached AdLimitState = "limit_reached"
)

// AdCooldown is the per-user watch record. Only the server-side grant
// path writes it; clients derive availability at read time.
type AdCooldown struct {
	bun.BaseModel  `bun:"table:ad_cooldown"`
	UserID         int64      `bun:"user_id,pk" json:"user_id"`
	LastAdWatched  *time.Time `bun:"last_ad_watched" json:"last_ad_watched"`
	DailyCount     int        `bun:"daily_count,default:0" json:"daily_count"`
	DailyResetDate string     `bun:"daily_reset_date" json:"daily_reset_date"`
	UpdatedAt      time.Time  `bun:"updated_at" json:"updated_at"`
}

// EffectiveCount treats a stale reset date as zero without writing.
func (c *AdCooldown) EffectiveCount(now time.Time) int {
	if c == nil {
		return 0
	}
	if c.DailyResetDate != now.UTC().Format(DailyResetLayout) {
		return 0
	}
	return c.DailyCount
}

func (c *AdCooldown) OnCooldown(now time.Time, window time.Duration) bool {
	if c == nil || c.LastAdWatched == nil {
		return false
	}
	return now.Before(c.LastAdWatched.Add(window))
}

// State derives the tracker state; nothing is stored.
func (c *AdCooldown) State(now time.Time, maxDaily int, window time.Duration) AdLimitState {
	if c.EffectiveCount(now) >= maxDaily {
		return AdStateLimitReached
	}
	if c.OnCooldown(now, window) {
		return AdStateOnCooldown
	}
	return AdStateAvailable
}

// AvailableAt returns when the next watch unlocks, nil when it already is.
func (c *AdCooldown) AvailableAt(now time.Time, maxDaily int, window time.Duration) *time.Time {
	switch c.State(now, maxDaily, window) {
	case AdStateAvailable:
		return nil
	case AdStateOnCooldown:
		at := c.LastAdWatched.Add(window)
		return &at
	default:
		next := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		return &next
	}
}

type AdLimitStatus struct {
	Success      bool         `json:"success"`
	State        AdLimitState `json:"state"`
	CurrentCount int          `json:"current_count"`
	MaxDaily     int          `json:"max_daily"`
	AvailableAt  *time.Time   `json:"available_at,omitempty"`
}
