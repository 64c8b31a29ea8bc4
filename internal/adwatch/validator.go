package adwatch

import (
	"idlegrow/internal/models"
)

// Result is the binary outcome of a reward validation. There is no
// partial credit: either the reward landed or it did not.
type Result struct {
	Granted      bool  `json:"granted"`
	GainedAmount int64 `json:"gained_amount"`
}

// Validate compares a balance snapshot taken before the ad against one
// taken after. Currency rewards must show a strictly higher balance.
// Boost rewards do not move balances, so a successful post-watch fetch
// is taken as confirmation and the nominal amount is reported.
func Validate(reward models.AdReward, before, after models.Balances) Result {
	switch reward.Type {
	case models.RewardCoins:
		if after.Coins > before.Coins {
			return Result{Granted: true, GainedAmount: after.Coins - before.Coins}
		}
		return Result{}
	case models.RewardGems:
		if after.Gems > before.Gems {
			return Result{Granted: true, GainedAmount: after.Gems - before.Gems}
		}
		return Result{}
	default:
		return Result{Granted: true, GainedAmount: reward.Amount}
	}
}
