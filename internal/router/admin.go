package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rvillanueva/resort-backoffice/internal/handler"
	"github.com/rvillanueva/resort-backoffice/internal/middleware"
	"github.com/rvillanueva/resort-backoffice/internal/model"
)

// RegisterAdmin registers the back-office management endpoints under
// /v1/admin.  All routes require a valid JWT and the admin role.
func RegisterAdmin(e *echo.Echo, ac *handler.AccommodationHandler, am *handler.AmenityHandler, us *handler.UserHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/accommodations", ac.List)
	g.POST("/accommodations", ac.Create)
	g.GET("/accommodations/:id", ac.Get)
	g.PUT("/accommodations/:id", ac.Update)
	g.DELETE("/accommodations/:id", ac.Delete)

	g.GET("/amenities", am.List)
	g.GET("/amenities/search", am.Search)
	g.POST("/amenities", am.Create)
	g.GET("/amenities/:id", am.Get)
	g.PUT("/amenities/:id", am.Update)
	g.DELETE("/amenities/:id", am.Delete)

	g.GET("/users", us.List)
	g.POST("/users", us.Create)
	g.GET("/users/:id", us.Get)
}

// RegisterLogs registers the activity-log listing.  Admins and employees
// share the route; what each actually sees is narrowed again inside the
// query by the visibility policy, so the middleware is the outer gate and
// the repository is the inner one.
func RegisterLogs(e *echo.Echo, lh *handler.LogHandler, jwtSecret string) {
	g := e.Group(
		"/v1/logs",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleEmployee),
	)
	g.GET("", lh.List)
}
