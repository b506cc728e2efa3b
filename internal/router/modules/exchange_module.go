package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hitbridge/traffic-exchange/internal/container"
	handlers "github.com/hitbridge/traffic-exchange/internal/interface/http"
	"github.com/hitbridge/traffic-exchange/internal/interface/middleware"
	"github.com/hitbridge/traffic-exchange/pkg/helpers"
)

// ExchangeModule wires the session, URL, stats and hit-registration routes.
// Everything here requires an authenticated caller.
type ExchangeModule struct {
	Sessions *handlers.SessionHandler
	Urls     *handlers.UrlHandler
	Exchange *handlers.ExchangeHandler
	JWT      *helpers.JWTManager
}

func NewExchangeModule(sessions *handlers.SessionHandler, urls *handlers.UrlHandler, exchange *handlers.ExchangeHandler, jwt *helpers.JWTManager) *ExchangeModule {
	return &ExchangeModule{Sessions: sessions, Urls: urls, Exchange: exchange, JWT: jwt}
}

func (m *ExchangeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 600, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/sessions", m.Sessions.List)
		auth.POST("/sessions", m.Sessions.Create)
		auth.PUT("/sessions/:id/status", m.Sessions.SetStatus)
		auth.PUT("/sessions/:id/active", m.Sessions.SetActive)
		auth.POST("/sessions/:id/restart", m.Sessions.Restart)

		auth.GET("/urls", m.Urls.List)
		auth.POST("/urls", m.Urls.Create)
		auth.PUT("/urls/:id/active", m.Urls.SetActive)
		auth.DELETE("/urls/:id", m.Urls.Delete)

		auth.GET("/stats", m.Exchange.Stats)
		auth.POST("/exchange/register-hit", m.Exchange.RegisterHit)
	}
}
