package services

import (
	"context"
	"log"

	"idlegrow/internal/datastore"
	"idlegrow/internal/models"
	"idlegrow/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceCatalog resolves the ad-reward offers shown for a player
// level. The catalog lives in postgres so offers can be tuned without a
// release; when the read fails the static default list is served
// instead, filtered the same way.
type ServiceCatalog struct {
	container          *do.Injector
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceCatalog(container *do.Injector) (*ServiceCatalog, error) {
	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceCatalog{container, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceCatalog) AvailableRewards(ctx context.Context, level int) []models.AdReward {
	if level < 1 {
		level = 1
	}

	callback := func() ([]models.AdReward, error) {
		return datastore.GetAdRewardsForLevel(ctx, service.readonlyPostgresDB, level)
	}

	rewards, err := caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyAdCatalog(level), CACHE_TTL_10_MINS, callback)
	if err != nil || len(rewards) == 0 {
		if err != nil {
			log.Println("ad catalog fallback:", err)
		}
		return defaultRewardsForLevel(level)
	}

	return rewards
}

func defaultRewardsForLevel(level int) []models.AdReward {
	out := make([]models.AdReward, 0, len(models.DefaultAdRewards))
	for _, r := range models.DefaultAdRewards {
		if r.MinLevel <= level {
			out = append(out, r)
		}
	}
	return out
}
