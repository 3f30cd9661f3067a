package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/middleware"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/server"
)

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult map[string]any

// CheckHealth returns 200 when every required check passes and 503 otherwise.
// The database is required; Redis only backs alerts, so a failing Redis is
// reported without failing the endpoint.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]checkResult)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	cfg := h.server.Config.Observability.HealthChecks

	if cfg.Enabled && slices.Contains(cfg.Checks, "database") {
		result, ok := h.check(c.Request().Context(), &logger, "database", cfg.Timeout, h.pingDatabase)
		checks["database"] = result
		isHealthy = isHealthy && ok
	}

	if cfg.Enabled && slices.Contains(cfg.Checks, "redis") && h.server.Redis != nil {
		result, _ := h.check(c.Request().Context(), &logger, "redis", cfg.Timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		checks["redis"] = result
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure("overall", map[string]any{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	if h.server.DB == nil {
		return fmt.Errorf("database not configured")
	}
	return h.server.DB.Ping(ctx)
}

// check runs one dependency probe with its own timeout.
func (h *HealthHandler) check(
	ctx context.Context,
	logger *zerolog.Logger,
	name string,
	timeout time.Duration,
	probe func(ctx context.Context) error,
) (checkResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	probeStart := time.Now()
	err := probe(ctx)
	elapsed := time.Since(probeStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordFailure(name, map[string]any{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return checkResult{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}, false
	}

	return checkResult{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}, true
}

// recordFailure sends a HealthCheckError custom event when New Relic is enabled.
func (h *HealthHandler) recordFailure(checkType string, attrs map[string]any) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	event := map[string]any{
		"check_type": checkType,
		"operation":  "health_check",
		"error_type": checkType + "_unhealthy",
	}
	for k, v := range attrs {
		event[k] = v
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", event)
}
