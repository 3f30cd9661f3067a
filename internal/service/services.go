package service

import (
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/repository"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/server"
)

type Services struct {
	Inventory *InventoryService
}

// NewServices wires services from the application container. Low-stock
// alerts are only enabled when the job service exists and alerts are configured.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	inventory := NewInventoryService(repos.Products, repos.Consumptions)

	if s.Job != nil && s.Config.Alerts.Enabled && s.DB != nil {
		inventory = inventory.WithLowStockAlerts(s.DB.Pool, s.Job)
	}

	return &Services{
		Inventory: inventory,
	}
}
