package handler

import (
	"os"
	"time"

	"idlegrow/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupUser struct {
	container *do.Injector
}

type authTelegramPayload struct {
	InitData string `json:"init_data"`
}

// AuthTelegram exchanges a Telegram init-data blob for a session token.
func (gr *groupUser) AuthTelegram(c echo.Context) error {
	ctx := c.Request().Context()

	var payload authTelegramPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	bot, err := do.Invoke[*services.Bot](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	playerAuth, err := bot.ValidateInitData(payload.InitData)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Authn))
	}

	servicePlayer, err := do.Invoke[*services.ServicePlayer](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	player, err := servicePlayer.FindOrCreatePlayer(ctx, playerAuth)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	claims := &services.CustomClaims{
		ID:       player.ID,
		Username: player.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"token":  tokenString,
		"player": player,
	}, nil)
}

func (gr *groupUser) Me(c echo.Context) error {
	ctx := c.Request().Context()

	player, err := ResolveValidPlayer(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	servicePlayer, err := do.Invoke[*services.ServicePlayer](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	player, err = servicePlayer.Me(ctx, player)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, player, nil)
}
