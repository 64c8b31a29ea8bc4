package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"idlegrow/internal/datastore/redis_store"
	"idlegrow/internal/interfaces"
	"idlegrow/internal/models"
	"idlegrow/internal/pkg/caching"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceAdReward grants the reward of a validated ad watch. All state
// changes happen here, server side; the client only ever observes the
// result through its balance snapshot.
type ServiceAdReward struct {
	container  *do.Injector
	postgresDB *bun.DB
	redisDB    redis.UniversalClient
	cache      caching.Cache
	rs         *redsync.Redsync
	limiter    interfaces.Limiter

	bot            *Bot
	serviceCatalog *ServiceCatalog
	serviceAdLimit *ServiceAdLimit
	servicePlayer  *ServicePlayer
	serviceEffects *ServiceEffects
}

func NewServiceAdReward(container *do.Injector) (*ServiceAdReward, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
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

	rateLimiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	bot, err := do.Invoke[*Bot](container)
	if err != nil {
		return nil, err
	}

	serviceCatalog, err := do.Invoke[*ServiceCatalog](container)
	if err != nil {
		return nil, err
	}

	serviceAdLimit, err := do.Invoke[*ServiceAdLimit](container)
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

	return &ServiceAdReward{container, postgresDB, redisDB, cache, rs, rateLimiter, bot, serviceCatalog, serviceAdLimit, servicePlayer, serviceEffects}, nil
}

type GrantRequest struct {
	TransactionID  string `json:"transaction_id"`
	RewardID       int    `json:"reward_id"`
	AdDurationSecs int    `json:"ad_duration"`
}

type GrantResult struct {
	Success       bool              `json:"success"`
	RewardType    models.RewardType `json:"reward_type"`
	RewardAmount  int64             `json:"reward_amount"`
	DailyCount    int               `json:"daily_count"`
	MaxDaily      int               `json:"max_daily"`
	TransactionID string            `json:"transaction_id"`
}

// StartWatch records an in-flight watch session so the SSV callback can
// be matched against what the client claims to have started.
func (service *ServiceAdReward) StartWatch(ctx context.Context, player *models.Player, rewardID int) (*models.AdWatchSession, error) {
	status, err := service.serviceAdLimit.Status(ctx, player.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if status.State == models.AdStateLimitReached {
		return nil, errorx.Wrap(ErrDailyLimit, errorx.RateLimiting)
	}
	if status.State == models.AdStateOnCooldown {
		return nil, errorx.Wrap(ErrOnCooldown, errorx.RateLimiting)
	}

	reward, err := service.findReward(ctx, player.Level, rewardID)
	if err != nil {
		return nil, err
	}

	session := &models.AdWatchSession{
		TransactionID: uuid.NewString(),
		UserID:        player.ID,
		RewardID:      reward.ID,
		RewardType:    reward.Type,
		RewardAmount:  reward.Amount,
		StartedAt:     time.Now(),
	}

	if err := redis_store.SetAdWatchSession(ctx, service.redisDB, session); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return session, nil
}

// Grant is the SSV entry point. Ordering matters: the callback must
// match the watch session this player actually started, the transaction
// claim rejects replays before any balance write, and the per-user
// mutex serializes concurrent callbacks so the daily counter
// check-and-increment cannot interleave.
func (service *ServiceAdReward) Grant(ctx context.Context, player *models.Player, req *GrantRequest) (*GrantResult, error) {
	if req.TransactionID == "" {
		return nil, errorx.Wrap(errors.New("missing transaction id"), errorx.Validation)
	}

	if err := service.limiter.Allow(ctx, LimitKeySSV(player.ID), redis_rate.PerMinute(SSV_RATE_LIMIT_PER_MINUTE)); err != nil {
		return nil, err
	}

	mutex := service.rs.NewMutex(LockKeyAdGrant(player.ID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrAdGrantLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	session, err := redis_store.GetAdWatchSession(ctx, service.redisDB, player.ID)
	if err != nil {
		return nil, errorx.Wrap(ErrNoWatchSession, errorx.Invalid)
	}
	if !session.Matches(req.TransactionID, req.RewardID) {
		return nil, errorx.Wrap(ErrWatchMismatch, errorx.Invalid)
	}

	claimed, err := redis_store.ClaimSSVTransaction(ctx, service.redisDB, req.TransactionID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !claimed {
		return nil, errorx.Wrap(ErrTxnReplayed, errorx.Invalid)
	}

	status, err := service.serviceAdLimit.Status(ctx, player.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if status.State == models.AdStateLimitReached {
		return nil, errorx.Wrap(ErrDailyLimit, errorx.RateLimiting)
	}
	if status.State == models.AdStateOnCooldown {
		return nil, errorx.Wrap(ErrOnCooldown, errorx.RateLimiting)
	}

	reward, err := service.findReward(ctx, player.Level, req.RewardID)
	if err != nil {
		return nil, err
	}

	amount := reward.ScaledAmount(req.AdDurationSecs)
	action := fmt.Sprintf("ad:%s", req.TransactionID)

	if reward.Type.IsBoost() {
		err = service.serviceEffects.ApplyEffect(ctx, &models.ActiveEffect{
			UserID:      player.ID,
			EffectType:  reward.Type,
			EffectValue: amount,
			ExpiresAt:   time.Now().Add(time.Duration(reward.DurationMinutes) * time.Minute),
			Source:      action,
		})
	} else {
		switch reward.Type {
		case models.RewardCoins:
			err = service.servicePlayer.AddCoins(ctx, player.ID, amount, action)
		case models.RewardGems:
			err = service.servicePlayer.AddGems(ctx, player.ID, amount, action)
		default:
			err = errorx.Wrap(fmt.Errorf("unhandled reward type %s", reward.Type), errorx.Service)
		}
	}
	if err != nil {
		return nil, err
	}

	count, err := service.serviceAdLimit.Increment(ctx, player.ID)
	if errors.Is(err, ErrDailyLimit) {
		// The reward above is already written and the ledger action is
		// idempotent, so surface the limit without rolling back.
		return nil, errorx.Wrap(ErrDailyLimit, errorx.RateLimiting)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	// nolint:errcheck
	redis_store.DeleteAdWatchSession(ctx, service.redisDB, player.ID)

	go func() {
		if count >= service.serviceAdLimit.MaxDaily(context.Background()) {
			if err := service.bot.SendMsg(player.ID, "🎬 That was your last ad reward for today. Come back tomorrow!"); err != nil {
				log.Println(err)
			}
		}
	}()

	return &GrantResult{
		Success:       true,
		RewardType:    reward.Type,
		RewardAmount:  amount,
		DailyCount:    count,
		MaxDaily:      status.MaxDaily,
		TransactionID: req.TransactionID,
	}, nil
}

func (service *ServiceAdReward) findReward(ctx context.Context, level int, rewardID int) (*models.AdReward, error) {
	rewards := service.serviceCatalog.AvailableRewards(ctx, level)
	for i := range rewards {
		if rewards[i].ID == rewardID {
			return &rewards[i], nil
		}
	}

	return nil, errorx.Wrap(errors.New("reward not found"), errorx.NotExist)
}
