package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementAdCountStopsAtCap(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, CreateTableAdCooldown(ctx, db))

	userID := time.Now().UnixNano()
	now := time.Now()

	for i := 1; i <= 3; i++ {
		count, err := IncrementAdCount(ctx, db, userID, 3, now)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	_, err := IncrementAdCount(ctx, db, userID, 3, now)
	assert.ErrorIs(t, err, ErrAdLimitConflict)
}

func TestResetDailyCountReopensTheCap(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, CreateTableAdCooldown(ctx, db))

	userID := time.Now().UnixNano()
	now := time.Now()

	_, err := IncrementAdCount(ctx, db, userID, 1, now)
	require.NoError(t, err)
	_, err = IncrementAdCount(ctx, db, userID, 1, now)
	require.ErrorIs(t, err, ErrAdLimitConflict)

	require.NoError(t, ResetDailyCount(ctx, db, userID, now))

	count, err := IncrementAdCount(ctx, db, userID, 1, now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
