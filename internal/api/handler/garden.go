package handler

import (
	"idlegrow/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupGarden struct {
	container *do.Injector
}

// Me is the polling snapshot: balances, multipliers and plots in one
// response, so a watcher can diff before/after an ad reward.
func (gr *groupGarden) Me(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	servicePlayer, err := do.Invoke[*services.ServicePlayer](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceGarden, err := do.Invoke[*services.ServiceGarden](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceEffects, err := do.Invoke[*services.ServiceEffects](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	balances, err := servicePlayer.Balances(ctx, player.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	plots, err := serviceGarden.Plots(ctx, player.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	multipliers, err := serviceEffects.Multipliers(ctx, player.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"coins":       balances.Coins,
		"gems":        balances.Gems,
		"level":       player.Level,
		"xp":          player.XP,
		"plots":       plots,
		"multipliers": multipliers,
	}, nil)
}

type plantPayload struct {
	Position int    `json:"position"`
	Plant    string `json:"plant"`
}

func (gr *groupGarden) Plant(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload plantPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceGarden, err := do.Invoke[*services.ServiceGarden](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	plot, err := serviceGarden.Plant(ctx, player, payload.Position, payload.Plant)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, plot, nil)
}

type harvestPayload struct {
	Position int `json:"position"`
}

func (gr *groupGarden) Harvest(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload harvestPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceGarden, err := do.Invoke[*services.ServiceGarden](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceGarden.Harvest(ctx, player, payload.Position)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}
