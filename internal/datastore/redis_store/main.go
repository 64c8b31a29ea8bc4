package redis_store

import (
	"context"
	"fmt"
	"time"

	"idlegrow/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	AD_WATCH_SESSION_TTL = 30 * time.Minute
	SSV_TXN_TTL          = 24 * time.Hour
)

func dbKeyAdWatchSession(userID int64) string {
	return fmt.Sprintf("ad_watch:session:%d", userID)
}

func dbKeySSVTransaction(transactionID string) string {
	return fmt.Sprintf("ssv:txn:%s", transactionID)
}

func dbKeyPlotNotified(userID int64, plotID int64) string {
	return fmt.Sprintf("garden:notified:%d:%d", userID, plotID)
}

func SetAdWatchSession(ctx context.Context, cmd redis.Cmdable, session *models.AdWatchSession) error {
	b, err := msgpack.Marshal(session)
	if err != nil {
		return err
	}

	return cmd.Set(ctx, dbKeyAdWatchSession(session.UserID), b, AD_WATCH_SESSION_TTL).Err()
}

func GetAdWatchSession(ctx context.Context, cmd redis.Cmdable, userID int64) (*models.AdWatchSession, error) {
	b, err := cmd.Get(ctx, dbKeyAdWatchSession(userID)).Bytes()
	if err != nil {
		return nil, err
	}

	var session models.AdWatchSession
	if err := msgpack.Unmarshal(b, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func DeleteAdWatchSession(ctx context.Context, cmd redis.Cmdable, userID int64) error {
	return cmd.Del(ctx, dbKeyAdWatchSession(userID)).Err()
}

// ClaimSSVTransaction marks a transaction id as processed. Returns
// false when another callback already claimed it.
func ClaimSSVTransaction(ctx context.Context, cmd redis.Cmdable, transactionID string) (bool, error) {
	return cmd.SetNX(ctx, dbKeySSVTransaction(transactionID), time.Now().Unix(), SSV_TXN_TTL).Result()
}

// MarkPlotNotified deduplicates garden-ready messages across cron runs.
func MarkPlotNotified(ctx context.Context, cmd redis.Cmdable, userID int64, plotID int64, ttl time.Duration) (bool, error) {
	return cmd.SetNX(ctx, dbKeyPlotNotified(userID, plotID), 1, ttl).Result()
}
