package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"idlegrow/internal/datastore"
	"idlegrow/internal/models"
	"idlegrow/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/mroth/weightedrand/v2"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type SeedPackDrop struct {
	Kind            string `json:"kind"`
	Amount          int64  `json:"amount"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Chance          int    `json:"-"`
}

// seedPackDrops is the gem-priced seed pack table. Weights are in
// permille; pity is intentionally absent.
var seedPackDrops = []SeedPackDrop{
	{Kind: "coins", Amount: 250, Chance: 450},
	{Kind: "coins", Amount: 1000, Chance: 250},
	{Kind: "gems", Amount: 3, Chance: 150},
	{Kind: "growth_boost", Amount: 100, DurationMinutes: 15, Chance: 100},
	{Kind: "nothing", Chance: 50},
}

type ServiceShop struct {
	container          *do.Injector
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
	rs                 *redsync.Redsync

	servicePlayer  *ServicePlayer
	serviceEffects *ServiceEffects
	serviceConfig  *ServiceConfig
	serviceGacha   *ServiceGacha[int]
}

func NewServiceShop(container *do.Injector) (*ServiceShop, error) {
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

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	servicePlayer, err := do.Invoke[*ServicePlayer](container)
	if err != nil {
		return nil, err
	}

	serviceEffects, err := do.Invoke[*ServiceEffects](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	choices := []weightedrand.Choice[int, int]{}
	for i, v := range seedPackDrops {
		choices = append(choices, weightedrand.NewChoice(i, v.Chance))
	}
	serviceGacha, err := NewServiceGacha[int](choices)
	if err != nil {
		return nil, err
	}

	return &ServiceShop{container, readonlyPostgresDB, cache, readonlyCache, rs, servicePlayer, serviceEffects, serviceConfig, serviceGacha}, nil
}

func (service *ServiceShop) PlantCatalog(ctx context.Context) ([]models.PlantType, error) {
	callback := func() ([]models.PlantType, error) {
		plants, err := datastore.GetPlantTypes(ctx, service.readonlyPostgresDB)
		if err != nil || len(plants) == 0 {
			return models.DefaultPlantTypes, nil
		}
		return plants, nil
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyPlantTypes(), CACHE_TTL_10_MINS, callback)
}

type SeedPackResult struct {
	Drop     SeedPackDrop `json:"drop"`
	GemsPaid int          `json:"gems_paid"`
}

// OpenSeedPack spends gems on a random drop. The lock keeps a player
// from opening two packs with one balance.
func (service *ServiceShop) OpenSeedPack(ctx context.Context, player *models.Player) (*SeedPackResult, error) {
	mutex := service.rs.NewMutex(LockKeySeedPack(player.ID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrSeedPackLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	price, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_SEED_PACK_GEM_PRICE, SEED_PACK_GEM_PRICE_DEFAULT)

	balances, err := service.servicePlayer.Balances(ctx, player.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if balances.Gems < int64(price) {
		return nil, errorx.Wrap(errors.New("not enough gems"), errorx.Validation)
	}

	packID := uuid.NewString()
	err = service.servicePlayer.AddGems(ctx, player.ID, -int64(price), fmt.Sprintf("seed-pack:%s", packID))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	drop := seedPackDrops[service.serviceGacha.Pick()]

	switch drop.Kind {
	case "coins":
		err = service.servicePlayer.AddCoins(ctx, player.ID, drop.Amount, fmt.Sprintf("seed-pack-drop:%s", packID))
	case "gems":
		err = service.servicePlayer.AddGems(ctx, player.ID, drop.Amount, fmt.Sprintf("seed-pack-drop:%s", packID))
	case "growth_boost":
		err = service.serviceEffects.ApplyEffect(ctx, &models.ActiveEffect{
			UserID:      player.ID,
			EffectType:  models.RewardGrowthBoost,
			EffectValue: drop.Amount,
			ExpiresAt:   time.Now().Add(time.Duration(drop.DurationMinutes) * time.Minute),
			Source:      fmt.Sprintf("seed-pack-drop:%s", packID),
		})
	case "nothing":
		// dud
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return &SeedPackResult{Drop: drop, GemsPaid: price}, nil
}
