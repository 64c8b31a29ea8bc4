package redis_store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"idlegrow/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRedis connects to the instance named by TEST_REDIS_ADDR.
// Integration tests skip when it is not set.
func testRedis(t *testing.T) redis.UniversalClient {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping integration test: redis not available")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() {
		//nolint:errcheck
		client.Close()
	})

	return client
}

func TestClaimSSVTransactionDedup(t *testing.T) {
	client := testRedis(t)
	ctx := context.Background()

	txn := fmt.Sprintf("txn-%d", time.Now().UnixNano())

	claimed, err := ClaimSSVTransaction(ctx, client, txn)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = ClaimSSVTransaction(ctx, client, txn)
	require.NoError(t, err)
	assert.False(t, claimed, "a replayed transaction id must not claim again")
}

func TestAdWatchSessionRoundTrip(t *testing.T) {
	client := testRedis(t)
	ctx := context.Background()

	userID := time.Now().UnixNano()
	session := &models.AdWatchSession{
		TransactionID: fmt.Sprintf("txn-%d", userID),
		UserID:        userID,
		RewardID:      1,
		RewardType:    models.RewardCoins,
		RewardAmount:  500,
		StartedAt:     time.Now().UTC(),
	}

	require.NoError(t, SetAdWatchSession(ctx, client, session))

	got, err := GetAdWatchSession(ctx, client, userID)
	require.NoError(t, err)
	assert.Equal(t, session.TransactionID, got.TransactionID)
	assert.Equal(t, session.RewardID, got.RewardID)
	assert.Equal(t, session.RewardType, got.RewardType)

	require.NoError(t, DeleteAdWatchSession(ctx, client, userID))

	_, err = GetAdWatchSession(ctx, client, userID)
	assert.Error(t, err, "a consumed session must not match a second callback")
}
