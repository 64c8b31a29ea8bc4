package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdWatchSessionMatches(t *testing.T) {
	session := &AdWatchSession{
		TransactionID: "txn-abc",
		UserID:        1,
		RewardID:      3,
		RewardType:    RewardCoins,
		RewardAmount:  500,
		StartedAt:     time.Now(),
	}

	t.Run("server-issued id and reward match", func(t *testing.T) {
		assert.True(t, session.Matches("txn-abc", 3))
	})

	t.Run("invented transaction id is rejected", func(t *testing.T) {
		assert.False(t, session.Matches("made-up-1", 3))
	})

	t.Run("reward swap is rejected", func(t *testing.T) {
		assert.False(t, session.Matches("txn-abc", 5))
	})

	t.Run("empty transaction id is rejected", func(t *testing.T) {
		assert.False(t, session.Matches("", 3))
	})

	t.Run("no session never matches", func(t *testing.T) {
		var none *AdWatchSession
		assert.False(t, none.Matches("txn-abc", 3))
	})
}
