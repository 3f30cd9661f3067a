package handler

import (
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/server"
)

// Handler is the base type for handlers that need the application container.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. It only holds a pointer, so it is
// returned by value.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}
