package handler

import (
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/server"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/service"
)

// Handlers groups every handler so the router receives a single value.
type Handlers struct {
	DBAPI  *DBAPIHandler
	HTTP   *HTTPHandler
	Health *HealthHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	// A nil *database.Database must not become a non-nil Beginner.
	var db Beginner
	if s.DB != nil {
		db = s.DB
	}

	dbAPI := NewDBAPIHandler(s.Config.Database, db, services.Inventory, s.Logger)

	return &Handlers{
		DBAPI:  dbAPI,
		HTTP:   NewHTTPHandler(s, dbAPI),
		Health: NewHealthHandler(s),
	}
}
