package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"idlegrow/internal/datastore"
	"idlegrow/internal/models"
	"idlegrow/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServicePlayer struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache

	bot            *Bot
	serviceConfig  *ServiceConfig
	serviceEffects *ServiceEffects
}

func NewServicePlayer(container *do.Injector) (*ServicePlayer, error) {
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

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	bot, err := do.Invoke[*Bot](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceEffects, err := do.Invoke[*ServiceEffects](container)
	if err != nil {
		return nil, err
	}

	return &ServicePlayer{container, postgresDB, readonlyPostgresDB, cache, readonlyCache, bot, serviceConfig, serviceEffects}, nil
}

func (service *ServicePlayer) FindOrCreatePlayer(ctx context.Context, auth *models.PlayerFromAuth) (*models.Player, error) {
	if auth == nil {
		return nil, errors.New("auth is nil")
	}

	player, _ := service.FindPlayerByID(ctx, auth.ID)
	if player != nil {
		if player.Username != strings.ToLower(auth.Username) ||
			player.FirstName != auth.FirstName ||
			player.LastName != auth.LastName ||
			player.PhotoURL != auth.PhotoURL {
			player.Username = strings.ToLower(auth.Username)
			player.FirstName = auth.FirstName
			player.LastName = auth.LastName
			player.PhotoURL = auth.PhotoURL
			player.UpdatedAt = time.Now()
			//nolint:errcheck
			datastore.UpdatePlayerProfile(ctx, service.postgresDB, player)
			_ = service.cache.Delete(ctx, DBKeyPlayer(player.ID))
		}
		return player, nil
	}

	now := time.Now()
	newPlayer := &models.Player{
		ID:           auth.ID,
		FirstName:    auth.FirstName,
		LastName:     auth.LastName,
		Username:     strings.ToLower(auth.Username),
		LanguageCode: auth.LanguageCode,
		PhotoURL:     auth.PhotoURL,
		Level:        1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	log.Println("Create new player:", "id:", newPlayer.ID, "username:", newPlayer.Username)
	player, err := datastore.CreatePlayer(ctx, service.postgresDB, newPlayer)
	if err != nil {
		return nil, err
	}

	player.IsNewPlayer = true

	welcomeCoins, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_WELCOME_COINS, WELCOME_COINS_DEFAULT)
	if welcomeCoins > 0 {
		err = service.AddCoins(ctx, player.ID, int64(welcomeCoins), "welcome")
		if err != nil {
			return player, err
		}
	}

	starterPlots, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_STARTER_PLOTS, STARTER_PLOTS_DEFAULT)
	plots := make([]*models.Plot, 0, starterPlots)
	for i := 0; i < starterPlots; i++ {
		plots = append(plots, &models.Plot{UserID: player.ID, Position: i})
	}
	if err := datastore.InsertPlots(ctx, service.postgresDB, plots); err != nil {
		return player, err
	}

	go func() {
		if err := service.bot.SendWelcomeMsg(player.ID); err != nil {
			log.Println(err)
		}
	}()

	return player, nil
}

func (service *ServicePlayer) FindPlayerByID(ctx context.Context, userID int64) (*models.Player, error) {
	callback := func() (*models.Player, error) {
		return datastore.FindPlayerByID(ctx, service.readonlyPostgresDB, userID)
	}
	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyPlayer(userID), CACHE_TTL_5_MINS, callback)
}

// Balances sums the ledgers; missing rows mean a zero balance, not an
// error. Cached briefly because the reward poller hammers this.
func (service *ServicePlayer) Balances(ctx context.Context, userID int64) (*models.Balances, error) {
	callback := func() (*models.Balances, error) {
		coins, err := datastore.GetTotalCoins(ctx, service.readonlyPostgresDB, userID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		gems, err := datastore.GetTotalGems(ctx, service.readonlyPostgresDB, userID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return &models.Balances{Coins: coins, Gems: gems}, nil
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyBalances(userID), CACHE_TTL_5_SECONDS, callback)
}

func (service *ServicePlayer) AddCoins(ctx context.Context, userID int64, coins int64, action string) error {
	err := datastore.InsertCoinEntry(ctx, service.postgresDB, &models.CoinEntry{
		UserID:    userID,
		Coins:     coins,
		Action:    action,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return service.cache.Delete(ctx, DBKeyBalances(userID))
}

func (service *ServicePlayer) AddGems(ctx context.Context, userID int64, gems int64, action string) error {
	err := datastore.InsertGemEntry(ctx, service.postgresDB, &models.GemEntry{
		UserID:    userID,
		Gems:      gems,
		Action:    action,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return service.cache.Delete(ctx, DBKeyBalances(userID))
}

func (service *ServicePlayer) AddXP(ctx context.Context, userID int64, xp int64) error {
	if err := datastore.AddPlayerXP(ctx, service.postgresDB, userID, xp); err != nil {
		return err
	}

	return service.cache.Delete(ctx, DBKeyPlayer(userID))
}

func (service *ServicePlayer) ClearPlayerCache(ctx context.Context, userID int64) error {
	if err := service.cache.Delete(ctx, DBKeyPlayer(userID)); err != nil {
		return err
	}

	return service.cache.Delete(ctx, DBKeyBalances(userID))
}

// Me assembles the snapshot the client polls: profile, balances and
// live effects.
func (service *ServicePlayer) Me(ctx context.Context, player *models.Player) (*models.Player, error) {
	balances, err := service.Balances(ctx, player.ID)
	if err != nil {
		return nil, err
	}

	player.Coins = balances.Coins
	player.Gems = balances.Gems

	effects, err := service.serviceEffects.ActiveEffects(ctx, player.ID)
	if err != nil {
		log.Println(fmt.Sprintf("load effects for %d:", player.ID), err)
		effects = nil
	}
	player.ActiveEffects = effects

	return player, nil
}
