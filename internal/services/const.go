package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrAdGrantLock = errors.New("ad grant locked")
var ErrHarvestLock = errors.New("harvest locked")
var ErrSeedPackLock = errors.New("seed pack locked")
var ErrDailyLimit = errors.New("daily ad limit reached")
var ErrOnCooldown = errors.New("ad reward on cooldown")
var ErrTxnReplayed = errors.New("transaction already processed")
var ErrNoWatchSession = errors.New("no ad watch in flight")
var ErrWatchMismatch = errors.New("callback does not match the started watch")

const (
	CONFIG_SERVER_MODE             = "SERVER_MODE"
	CONFIG_AD_MAX_DAILY            = "AD_MAX_DAILY"
	CONFIG_AD_COOLDOWN_MINUTES     = "AD_COOLDOWN_MINUTES"
	CONFIG_WELCOME_COINS           = "WELCOME_COINS"
	CONFIG_STARTER_PLOTS           = "STARTER_PLOTS"
	CONFIG_SEED_PACK_GEM_PRICE     = "SEED_PACK_GEM_PRICE"
	CONFIG_TEXT_NEW_PLAYER         = "TEXT_NEW_PLAYER"
	CONFIG_CRONJOB_GARDEN_NOTIFY   = "CRONJOB_GARDEN_NOTIFY"
	CONFIG_NOTIFY_GARDEN_READY     = "NOTIFY_GARDEN_READY"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_STAGING     = "staging"
	SERVER_MODE_PRODUCTION  = "production"

	AD_MAX_DAILY_DEFAULT        = 5
	AD_COOLDOWN_MINUTES_DEFAULT = 120
	WELCOME_COINS_DEFAULT       = 100
	STARTER_PLOTS_DEFAULT       = 4
	SEED_PACK_GEM_PRICE_DEFAULT = 25

	CACHE_TTL_5_SECONDS  = 5 * time.Second
	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_10_MINS    = 10 * time.Minute
	CACHE_TTL_30_MINS    = 30 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
	CACHE_TTL_1_DAY      = 24 * time.Hour

	SSV_RATE_LIMIT_PER_MINUTE = 30
)

func LockKeyAdGrant(userID int64) string {
	return fmt.Sprintf("lock:ad-grant:%d", userID)
}

func LockKeyHarvest(userID int64) string {
	return fmt.Sprintf("lock:harvest:%d", userID)
}

func LockKeySeedPack(userID int64) string {
	return fmt.Sprintf("lock:seed-pack:%d", userID)
}

// db
func DBKeyPlayer(userID int64) string {
	return fmt.Sprintf("player:%d", userID)
}

func DBKeyBalances(userID int64) string {
	return fmt.Sprintf("player:balances:%d", userID)
}

func DBKeyAdStatus(userID int64) string {
	return fmt.Sprintf("ads:status:%d", userID)
}

func DBKeyAdCatalog(level int) string {
	return fmt.Sprintf("ads:catalog:%d", level)
}

func DBKeyActiveEffects(userID int64) string {
	return fmt.Sprintf("effects:%d", userID)
}

func DBKeyMultipliers(userID int64) string {
	return fmt.Sprintf("multipliers:%d", userID)
}

func DBKeyPlantTypes() string {
	return "plant_types:all"
}

func DBKeyPlots(userID int64) string {
	return fmt.Sprintf("plots:%d", userID)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func LimitKeySSV(userID int64) string {
	return fmt.Sprintf("limit:ssv:%d", userID)
}
