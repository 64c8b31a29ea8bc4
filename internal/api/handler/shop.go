package handler

import (
	"idlegrow/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupShop struct {
	container *do.Injector
}

func (gr *groupShop) GetPlants(c echo.Context) error {
	ctx := c.Request().Context()

	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	plants, err := serviceShop.PlantCatalog(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, plants, nil)
}

func (gr *groupShop) OpenSeedPack(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceShop.OpenSeedPack(ctx, player)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}
