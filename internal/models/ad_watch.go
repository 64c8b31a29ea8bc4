package models

import "time"

// AdWatchSession is the short-lived server record of a watch in flight,
// created when the client starts a watch and consumed by the SSV
// callback. Stored in redis with a TTL.
type AdWatchSession struct {
	TransactionID string     `json:"transaction_id"`
	UserID        int64      `json:"user_id"`
	RewardID      int        `json:"reward_id"`
	RewardType    RewardType `json:"reward_type"`
	RewardAmount  int64      `json:"reward_amount"`
	StartedAt     time.Time  `json:"started_at"`
}

// Matches reports whether a callback refers to this session. The
// transaction id is server-issued, so a callback carrying anything else
// never went through a started watch.
func (s *AdWatchSession) Matches(transactionID string, rewardID int) bool {
	if s == nil || transactionID == "" {
		return false
	}
	return s.TransactionID == transactionID && s.RewardID == rewardID
}
