package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"idlegrow/internal/datastore"
	"idlegrow/internal/models"
	"idlegrow/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceAdLimit is the cooldown/daily-cap tracker. State is derived at
// read time from the stored record; only Increment and ForceReset write.
type ServiceAdLimit struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache

	serviceConfig *ServiceConfig
}

func NewServiceAdLimit(container *do.Injector) (*ServiceAdLimit, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAdLimit{container, postgresDB, readonlyPostgresDB, cache, serviceConfig}, nil
}

func (service *ServiceAdLimit) MaxDaily(ctx context.Context) int {
	max, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_AD_MAX_DAILY, AD_MAX_DAILY_DEFAULT)
	return max
}

func (service *ServiceAdLimit) CooldownWindow(ctx context.Context) time.Duration {
	minutes, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_AD_COOLDOWN_MINUTES, AD_COOLDOWN_MINUTES_DEFAULT)
	return time.Duration(minutes) * time.Minute
}

// Status never writes; a record with yesterday's reset date is reported
// as count 0 and available immediately.
func (service *ServiceAdLimit) Status(ctx context.Context, userID int64) (*models.AdLimitStatus, error) {
	callback := func() (*models.AdCooldown, error) {
		record, err := datastore.GetAdCooldown(ctx, service.readonlyPostgresDB, userID)
		if errors.Is(err, sql.ErrNoRows) {
			// No record yet; the zero value derives to available.
			return &models.AdCooldown{UserID: userID}, nil
		}
		return record, err
	}

	record, err := caching.UseCache(ctx, service.cache, DBKeyAdStatus(userID), CACHE_TTL_5_SECONDS, callback)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	maxDaily := service.MaxDaily(ctx)
	window := service.CooldownWindow(ctx)
	state := record.State(now, maxDaily, window)

	return &models.AdLimitStatus{
		Success:      state == models.AdStateAvailable,
		State:        state,
		CurrentCount: record.EffectiveCount(now),
		MaxDaily:     maxDaily,
		AvailableAt:  record.AvailableAt(now, maxDaily, window),
	}, nil
}

// Increment counts a validated watch. The guarded UPDATE in the
// datastore keeps concurrent double-submissions from double-crediting.
func (service *ServiceAdLimit) Increment(ctx context.Context, userID int64) (int, error) {
	count, err := datastore.IncrementAdCount(ctx, service.postgresDB, userID, service.MaxDaily(ctx), time.Now())
	if errors.Is(err, datastore.ErrAdLimitConflict) {
		return 0, ErrDailyLimit
	}
	if err != nil {
		return 0, err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyAdStatus(userID))
	return count, nil
}

func (service *ServiceAdLimit) ForceReset(ctx context.Context, userID int64) error {
	if err := datastore.ResetDailyCount(ctx, service.postgresDB, userID, time.Now()); err != nil {
		return err
	}

	return service.cache.Delete(ctx, DBKeyAdStatus(userID))
}
