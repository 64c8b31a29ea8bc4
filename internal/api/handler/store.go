package handler

import (
	"idlegrow/internal/models"
	"idlegrow/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupStore struct {
	container *do.Injector
}

func (gr *groupStore) GetItems(c echo.Context) error {
	return httpx.RestAbort(c, models.StoreItems, nil)
}

type createPaymentPayload struct {
	Item string `json:"item"`
}

func (gr *groupStore) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload createPaymentPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	servicePayment, err := do.Invoke[*services.ServicePayment](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := servicePayment.CreatePayment(ctx, player, payload.Item)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

type verifyPaymentPayload struct {
	SessionID string `json:"session_id"`
}

func (gr *groupStore) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload verifyPaymentPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	servicePayment, err := do.Invoke[*services.ServicePayment](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := servicePayment.VerifyPayment(ctx, player, payload.SessionID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}
