package datastore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"idlegrow/internal/models"

	"github.com/uptrace/bun"
)

// ErrAdLimitConflict means the conditional increment matched no row:
// either the daily cap was hit or the row was concurrently reset.
var ErrAdLimitConflict = errors.New("ad count increment rejected")

func CreateTableAdCooldown(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.AdCooldown)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.AdCooldown)(nil)).Index("index_ad_cooldown_reset_date").IfNotExists().Column("daily_reset_date").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetAdCooldown(ctx context.Context, db *bun.DB, userID int64) (*models.AdCooldown, error) {
	var record models.AdCooldown
	err := db.NewSelect().Model(&record).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// IncrementAdCount is the atomic replacement for the old
// select-then-update pattern: the guarded UPDATE either moves the count
// forward under the cap or touches nothing, so two concurrent
// submissions can never double-credit.
func IncrementAdCount(ctx context.Context, db *bun.DB, userID int64, maxDaily int, now time.Time) (int, error) {
	today := now.UTC().Format(models.DailyResetLayout)

	record := &models.AdCooldown{
		UserID:         userID,
		DailyCount:     0,
		DailyResetDate: today,
		UpdatedAt:      now,
	}
	_, err := db.NewInsert().Model(record).On("CONFLICT (user_id) DO NOTHING").Exec(ctx)
	if err != nil {
		return 0, err
	}

	// Roll a stale row over to today before counting against the cap.
	_, err = db.NewUpdate().Model((*models.AdCooldown)(nil)).
		Set("daily_count = 0").
		Set("daily_reset_date = ?", today).
		Set("updated_at = ?", now).
		Where("user_id = ?", userID).
		Where("daily_reset_date < ?", today).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	var count int
	err = db.NewRaw(`
		UPDATE ad_cooldown
		SET daily_count = daily_count + 1, last_ad_watched = ?, updated_at = ?
		WHERE user_id = ? AND daily_reset_date = ? AND daily_count < ?
		RETURNING daily_count`, now, now, userID, today, maxDaily).Scan(ctx, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAdLimitConflict
	}
	if err != nil {
		return 0, err
	}

	return count, nil
}

func ResetDailyCount(ctx context.Context, db *bun.DB, userID int64, now time.Time) error {
	record := &models.AdCooldown{
		UserID:         userID,
		DailyCount:     0,
		DailyResetDate: now.UTC().Format(models.DailyResetLayout),
		UpdatedAt:      now,
	}
	_, err := db.NewInsert().Model(record).
		On("CONFLICT (user_id) DO UPDATE").
		Set("daily_count = 0").
		Set("daily_reset_date = EXCLUDED.daily_reset_date").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// ResetStaleDailyCounts is the cron sweep; read paths already derive
// stale counts as zero, this just keeps stored rows tidy.
func ResetStaleDailyCounts(ctx context.Context, db *bun.DB, now time.Time) (int64, error) {
	today := now.UTC().Format(models.DailyResetLayout)
	res, err := db.NewUpdate().Model((*models.AdCooldown)(nil)).
		Set("daily_count = 0").
		Set("daily_reset_date = ?", today).
		Set("updated_at = ?", now).
		Where("daily_reset_date < ?", today).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
