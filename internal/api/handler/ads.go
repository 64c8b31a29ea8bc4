package handler

import (
	"errors"
	"net/http"

	"idlegrow/internal/models"
	"idlegrow/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAds struct {
	container *do.Injector
}

// GetLimit reports the watch availability. A blocked state answers 403
// with the counters in the body so the client can render the reason.
func (gr *groupAds) GetLimit(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAdLimit, err := do.Invoke[*services.ServiceAdLimit](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	status, err := serviceAdLimit.Status(ctx, player.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	if status.State != models.AdStateAvailable {
		return c.JSON(http.StatusForbidden, status)
	}

	return httpx.RestAbort(c, status, nil)
}

func (gr *groupAds) GetRewards(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rewards := serviceCatalog.AvailableRewards(ctx, player.Level)
	return httpx.RestAbort(c, rewards, nil)
}

type startWatchPayload struct {
	RewardID int `json:"reward_id"`
}

func (gr *groupAds) StartWatch(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload startWatchPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceAdReward, err := do.Invoke[*services.ServiceAdReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	session, err := serviceAdReward.StartWatch(ctx, player, payload.RewardID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, session, nil)
}

// SSV is the server-side-verification callback. It performs the whole
// validated grant: dedup, availability, scaling, write, count.
func (gr *groupAds) SSV(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload services.GrantRequest
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceAdReward, err := do.Invoke[*services.ServiceAdReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceAdReward.Grant(ctx, player, &payload)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

// Count bumps the daily counter without granting anything. Kept for
// clients that track impressions separately from rewards.
func (gr *groupAds) Count(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAdLimit, err := do.Invoke[*services.ServiceAdLimit](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	count, err := serviceAdLimit.Increment(ctx, player.ID)
	if errors.Is(err, services.ErrDailyLimit) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.RateLimiting))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"daily_count": count,
		"max_daily":   serviceAdLimit.MaxDaily(ctx),
	}, nil)
}

// ForceReset zeroes today's counter for the calling player. Exposed for
// QA builds; production clients never call it.
func (gr *groupAds) ForceReset(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAdLimit, err := do.Invoke[*services.ServiceAdLimit](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceAdLimit.ForceReset(ctx, player.ID); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, "success", nil)
}
