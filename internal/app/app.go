// Package app assembles the application from configuration: logger, server
// container, repositories, services and handlers. Every entrypoint
// (HTTP server, job worker, serverless function, CLI invoke) starts here.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/config"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/handler"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/logger"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/repository"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/server"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/service"
)

type App struct {
	Server   *server.Server
	Services *service.Services
	Handlers *handler.Handlers
	Logger   *zerolog.Logger
}

// New wires every layer. Nothing is started.
func New(cfg *config.Config) (*App, error) {
	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize new relic: %w", err)
	}

	log := logger.NewLogger(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, err
	}

	repos := repository.NewRepositories()
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)

	return &App{
		Server:   srv,
		Services: services,
		Handlers: handlers,
		Logger:   &log,
	}, nil
}

// Close releases every resource and flushes New Relic.
func (a *App) Close(ctx context.Context) error {
	err := a.Server.Shutdown(ctx)
	a.Server.LoggerService.Shutdown()
	return err
}
