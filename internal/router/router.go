package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rvillanueva/resort-backoffice/internal/config"
	"github.com/rvillanueva/resort-backoffice/internal/handler"
	"github.com/rvillanueva/resort-backoffice/internal/middleware"
)

// RegisterPublic registers the unauthenticated endpoints: health, the
// landing page and the public accommodation detail.  Public GETs sit behind
// the response cache since they serve identical payloads to every visitor.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/health", handler.Health)

	g := e.Group("/v1", middleware.ResponseCache(cacheCfg, rdb))
	g.GET("/welcome", p.Welcome)
	g.GET("/accommodations/:id", p.Detail)
}

// RegisterAuth registers the authentication endpoints under /v1/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	me := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}
