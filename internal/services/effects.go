package services

import (
	"context"
	"log"
	"time"

	"idlegrow/internal/datastore"
	"idlegrow/internal/models"
	"idlegrow/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceEffects struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
}

func NewServiceEffects(container *do.Injector) (*ServiceEffects, error) {
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

	return &ServiceEffects{container, postgresDB, readonlyPostgresDB, cache}, nil
}

// ActiveEffects returns the non-expired effects for a player. Expiry is
// filtered both in SQL and again in Multipliers so a short cache TTL
// cannot resurrect a just-expired boost.
func (service *ServiceEffects) ActiveEffects(ctx context.Context, userID int64) ([]models.ActiveEffect, error) {
	callback := func() ([]models.ActiveEffect, error) {
		return datastore.GetActiveEffects(ctx, service.readonlyPostgresDB, userID, time.Now())
	}

	return caching.UseCache(ctx, service.cache, DBKeyActiveEffects(userID), CACHE_TTL_5_SECONDS, callback)
}

func (service *ServiceEffects) Multipliers(ctx context.Context, userID int64) (models.Multipliers, error) {
	effects, err := service.ActiveEffects(ctx, userID)
	if err != nil {
		return models.Multipliers{Coin: 1, Gem: 1, Growth: 1}, err
	}

	return models.ComposeMultipliers(effects, time.Now()), nil
}

func (service *ServiceEffects) ApplyEffect(ctx context.Context, effect *models.ActiveEffect) error {
	if err := datastore.InsertActiveEffect(ctx, service.postgresDB, effect); err != nil {
		return err
	}

	return service.cache.Delete(ctx, DBKeyActiveEffects(effect.UserID))
}

// CleanupExpired prunes dead rows. Purely hygienic: reads already
// ignore expired effects.
func (service *ServiceEffects) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := datastore.DeleteExpiredEffects(ctx, service.postgresDB, time.Now())
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		log.Println("effects cleanup:", deleted, "rows")
	}
	return deleted, nil
}
