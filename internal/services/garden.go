package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"idlegrow/internal/datastore"
	"idlegrow/internal/models"
	"idlegrow/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceGarden struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	rs                 *redsync.Redsync

	servicePlayer  *ServicePlayer
	serviceEffects *ServiceEffects
}

func NewServiceGarden(container *do.Injector) (*ServiceGarden, error) {
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

	return &ServiceGarden{container, postgresDB, readonlyPostgresDB, cache, rs, servicePlayer, serviceEffects}, nil
}

// Plots returns the player's plots with ready_at computed against the
// current growth multiplier.
func (service *ServiceGarden) Plots(ctx context.Context, userID int64) ([]models.Plot, error) {
	callback := func() ([]models.Plot, error) {
		return datastore.GetPlots(ctx, service.readonlyPostgresDB, userID)
	}

	plots, err := caching.UseCache(ctx, service.cache, DBKeyPlots(userID), CACHE_TTL_5_SECONDS, callback)
	if err != nil {
		return nil, err
	}

	multipliers, err := service.serviceEffects.Multipliers(ctx, userID)
	if err != nil {
		multipliers = models.Multipliers{Coin: 1, Gem: 1, Growth: 1}
	}

	for i := range plots {
		plot := &plots[i]
		if plot.Empty() || plot.Plant == nil {
			continue
		}
		grow := models.GrowthDuration(time.Duration(plot.Plant.GrowMinutes)*time.Minute, multipliers.Growth)
		readyAt := plot.PlantedAt.Add(grow)
		plot.ReadyAt = &readyAt
	}

	return plots, nil
}

func (service *ServiceGarden) Plant(ctx context.Context, player *models.Player, position int, plantSlug string) (*models.Plot, error) {
	plant, err := datastore.GetPlantTypeBySlug(ctx, service.readonlyPostgresDB, plantSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(errors.New("plant not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if plant.MinLevel > player.Level {
		return nil, errorx.Wrap(errors.New("plant locked at your level"), errorx.Validation)
	}

	plot, err := datastore.GetPlot(ctx, service.postgresDB, player.ID, position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(errors.New("plot not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if !plot.Empty() {
		return nil, errorx.Wrap(errors.New("plot already planted"), errorx.Validation)
	}

	balances, err := service.servicePlayer.Balances(ctx, player.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if balances.Coins < plant.SeedPrice {
		return nil, errorx.Wrap(errors.New("not enough coins"), errorx.Validation)
	}

	// Claim the plot before charging, so a raced double-plant debits
	// the seed price once.
	now := time.Now()
	claimed, err := datastore.SetPlotPlanted(ctx, service.postgresDB, plot, plant.ID, now)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !claimed {
		return nil, errorx.Wrap(errors.New("plot already planted"), errorx.Validation)
	}

	err = service.servicePlayer.AddCoins(ctx, player.ID, -plant.SeedPrice, fmt.Sprintf("seed:%s", uuid.NewString()))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	// nolint:errcheck
	service.cache.Delete(ctx, DBKeyPlots(player.ID))

	plot.PlantTypeID = &plant.ID
	plot.PlantedAt = &now
	plot.Plant = plant
	return plot, nil
}

type HarvestResult struct {
	Plot   *models.Plot `json:"plot"`
	Coins  int64        `json:"coins"`
	XP     int64        `json:"xp"`
	Levels int          `json:"levels"`
}

// Harvest pays out yield × coin multiplier and clears the plot. The
// per-user mutex plus the guarded clear makes a double-tap pay once.
func (service *ServiceGarden) Harvest(ctx context.Context, player *models.Player, position int) (*HarvestResult, error) {
	mutex := service.rs.NewMutex(LockKeyHarvest(player.ID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrHarvestLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	plot, err := datastore.GetPlot(ctx, service.postgresDB, player.ID, position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(errors.New("plot not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	multipliers, err := service.serviceEffects.Multipliers(ctx, player.ID)
	if err != nil {
		multipliers = models.Multipliers{Coin: 1, Gem: 1, Growth: 1}
	}

	if !plot.Ready(time.Now(), multipliers.Growth) {
		return nil, errorx.Wrap(errors.New("plant not ready"), errorx.Validation)
	}

	plant := plot.Plant
	cleared, err := datastore.ClearPlot(ctx, service.postgresDB, plot)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !cleared {
		return nil, errorx.Wrap(errors.New("plot already harvested"), errorx.Validation)
	}

	coins := int64(float64(plant.Yield) * multipliers.Coin)
	err = service.servicePlayer.AddCoins(ctx, player.ID, coins, fmt.Sprintf("harvest:%s", uuid.NewString()))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if err := service.servicePlayer.AddXP(ctx, player.ID, plant.XP); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	// nolint:errcheck
	service.cache.Delete(ctx, DBKeyPlots(player.ID))

	newLevel := models.LevelForXP(player.XP + plant.XP)

	plot.PlantTypeID = nil
	plot.PlantedAt = nil
	plot.Plant = nil
	return &HarvestResult{
		Plot:   plot,
		Coins:  coins,
		XP:     plant.XP,
		Levels: newLevel - player.Level,
	}, nil
}
