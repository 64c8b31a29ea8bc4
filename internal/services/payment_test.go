package services

import (
	"testing"

	"idlegrow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExistingPurchase(t *testing.T) {
	purchase := &models.GemPurchase{
		ID:        "purchase-1",
		UserID:    7,
		ItemSlug:  "gems-small",
		GemAmount: 100,
		Status:    models.PURCHASE_STATUS_PENDING,
	}

	t.Run("pending purchase continues to the stripe check", func(t *testing.T) {
		result, err := resolveExistingPurchase(purchase, 7)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("another player's purchase is rejected", func(t *testing.T) {
		result, err := resolveExistingPurchase(purchase, 8)
		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("completed purchase short-circuits without re-granting", func(t *testing.T) {
		done := *purchase
		done.Status = models.PURCHASE_STATUS_COMPLETED

		result, err := resolveExistingPurchase(&done, 7)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.Success)
		assert.Equal(t, models.PURCHASE_STATUS_COMPLETED, result.Status)
		assert.Equal(t, int64(100), result.GemAmount)
	})
}
