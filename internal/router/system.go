package router

import (
	"github.com/labstack/echo/v4"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/handler"
)

func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}
