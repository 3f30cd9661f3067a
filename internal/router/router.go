// Package router initializes the Echo router.
//
// It registers the middlewares and maps paths to handlers. The db-api is
// served for every method on "/" and "/db-api"; dispatch happens inside the
// handler, not in the router.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/handler"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/middleware"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/server"
)

// DBAPIPaths are the paths the db-api answers on.
var DBAPIPaths = []string{"/", "/db-api"}

// NewRouter builds the Echo instance with middleware and routes.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)
	registerDBAPIRoutes(router, h)

	return router
}

func registerDBAPIRoutes(r *echo.Echo, h *handler.Handlers) {
	for _, path := range DBAPIPaths {
		r.Any(path, h.HTTP.ServeDBAPI)
	}
}
