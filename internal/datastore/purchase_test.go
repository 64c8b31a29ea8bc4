package datastore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"idlegrow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPurchaseCompletedFlipsOnce(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, CreateTableGemPurchase(ctx, db))

	id := fmt.Sprintf("purchase-%d", time.Now().UnixNano())
	now := time.Now()
	require.NoError(t, InsertGemPurchase(ctx, db, &models.GemPurchase{
		ID:              id,
		UserID:          1,
		ItemSlug:        "gems-small",
		GemAmount:       100,
		PriceUSDCents:   199,
		StripeSessionID: "cs_test_" + id,
		Status:          models.PURCHASE_STATUS_PENDING,
		CreatedAt:       now,
		UpdatedAt:       now,
	}))

	flipped, err := MarkPurchaseCompleted(ctx, db, id, time.Now())
	require.NoError(t, err)
	assert.True(t, flipped)

	// A replayed verify call must not flip again, so the gem grant
	// behind it happens once.
	flipped, err = MarkPurchaseCompleted(ctx, db, id, time.Now())
	require.NoError(t, err)
	assert.False(t, flipped)
}
