package router

import (
	"github.com/hitbridge/traffic-exchange/internal/application"
	"github.com/hitbridge/traffic-exchange/internal/container"
	handlers "github.com/hitbridge/traffic-exchange/internal/interface/http"
	"github.com/hitbridge/traffic-exchange/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	authSvc := application.NewAuthService(
		container.GetUserRepo(),
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
	)
	authHandler := handlers.NewAuthHandler(authSvc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))

	exchangeSvc := application.NewExchangeService(
		container.GetUserRepo(),
		container.GetSessionRepo(),
		container.GetUrlRepo(),
		cfg.HitReward,
		container.GetRestarter(),
		container.GetLogger(),
	)
	sessionHandler := handlers.NewSessionHandler(exchangeSvc, container.GetLogger())
	urlHandler := handlers.NewUrlHandler(exchangeSvc, container.GetLogger())
	exchangeHandler := handlers.NewExchangeHandler(exchangeSvc, container.GetLogger())
	r.Add(modules.NewExchangeModule(sessionHandler, urlHandler, exchangeHandler, container.GetJWT()))
}
