package handler

import (
	"net/http"

	"idlegrow/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🌱")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)

		u := groupUser{cfg.Container}
		routesAPIv1.POST("/auth/telegram", u.AuthTelegram)

		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.
		routesAPIv1.GET("", Hello)

		routesAPIv1.GET("/user/me", u.Me)

		a := groupAds{cfg.Container}
		routesAPIv1.GET("/ads/limit", a.GetLimit)
		routesAPIv1.GET("/ads/rewards", a.GetRewards)
		routesAPIv1.POST("/ads/watch/start", a.StartWatch)
		routesAPIv1.POST("/ads/ssv", a.SSV)
		routesAPIv1.POST("/ads/count", a.Count)
		routesAPIv1.POST("/ads/reset", a.ForceReset)

		g := groupGarden{cfg.Container}
		routesAPIv1.GET("/garden/me", g.Me)
		routesAPIv1.POST("/garden/plant", g.Plant)
		routesAPIv1.POST("/garden/harvest", g.Harvest)

		s := groupShop{cfg.Container}
		routesAPIv1.GET("/shop/plants", s.GetPlants)
		routesAPIv1.POST("/shop/seed-pack", s.OpenSeedPack)

		st := groupStore{cfg.Container}
		routesAPIv1.GET("/store/items", st.GetItems)
		routesAPIv1.POST("/store/create-payment", st.CreatePayment)
		routesAPIv1.POST("/store/verify-payment", st.VerifyPayment)
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
