package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/model"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/repository"
)

// Tx is the request transaction as seen by the service: statements plus commit.
type Tx interface {
	repository.DBTX
	Commit(ctx context.Context) error
}

type ProductStore interface {
	List(ctx context.Context, db repository.DBTX) ([]model.Product, error)
	Create(ctx context.Context, db repository.DBTX, p model.NewProduct) (int64, error)
	DecrementStock(ctx context.Context, db repository.DBTX, productID *int64, quantity *decimal.Decimal) error
	StockLevel(ctx context.Context, db repository.DBTX, productID int64) (model.StockLevel, error)
}

type ConsumptionStore interface {
	ListRecent(ctx context.Context, db repository.DBTX, limit int) ([]model.Consumption, error)
	Create(ctx context.Context, db repository.DBTX, c model.NewConsumption) (int64, error)
}

// AlertQueue accepts low-stock notifications; implemented by job.JobService.
type AlertQueue interface {
	EnqueueLowStock(ctx context.Context, level model.StockLevel) error
}

// alertTimeout bounds the post-commit stock read and enqueue.
const alertTimeout = 3 * time.Second

// InventoryService implements the four inventory operations.
type InventoryService struct {
	products     ProductStore
	consumptions ConsumptionStore

	// reader and alerts are nil unless low-stock alerts are enabled.
	reader repository.DBTX
	alerts AlertQueue
}

func NewInventoryService(products ProductStore, consumptions ConsumptionStore) *InventoryService {
	return &InventoryService{
		products:     products,
		consumptions: consumptions,
	}
}

// WithLowStockAlerts returns a copy that, after each committed consumption,
// reads the product's stock through reader and enqueues an alert when low.
func (s *InventoryService) WithLowStockAlerts(reader repository.DBTX, alerts AlertQueue) *InventoryService {
	cp := *s
	cp.reader = reader
	cp.alerts = alerts
	return &cp
}

// ListProducts returns every product with nullable columns defaulted.
func (s *InventoryService) ListProducts(ctx context.Context, db repository.DBTX) ([]model.ProductView, error) {
	products, err := s.products.List(ctx, db)
	if err != nil {
		return nil, err
	}

	views := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, p.View())
	}
	return views, nil
}

// ListConsumptions returns the most recent consumption records.
func (s *InventoryService) ListConsumptions(ctx context.Context, db repository.DBTX) ([]model.ConsumptionView, error) {
	consumptions, err := s.consumptions.ListRecent(ctx, db, model.RecentConsumptionLimit)
	if err != nil {
		return nil, err
	}

	views := make([]model.ConsumptionView, 0, len(consumptions))
	for _, c := range consumptions {
		views = append(views, c.View())
	}
	return views, nil
}

// AddConsumption inserts the record and decrements stock on tx, then commits.
// Any failure before commit leaves tx uncommitted; the caller rolls it back.
func (s *InventoryService) AddConsumption(ctx context.Context, tx Tx, in model.NewConsumption) (int64, error) {
	id, err := s.consumptions.Create(ctx, tx, in)
	if err != nil {
		return 0, err
	}

	if err := s.products.DecrementStock(ctx, tx, in.ProductID, in.Quantity); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	if in.ProductID != nil {
		s.notifyIfLow(ctx, *in.ProductID)
	}

	return id, nil
}

// AddProduct inserts a product on tx and commits.
func (s *InventoryService) AddProduct(ctx context.Context, tx Tx, in model.NewProduct) (int64, error) {
	id, err := s.products.Create(ctx, tx, in)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return id, nil
}

// notifyIfLow never fails the request: errors are logged and dropped.
func (s *InventoryService) notifyIfLow(ctx context.Context, productID int64) {
	if s.alerts == nil || s.reader == nil {
		return
	}

	logger := zerolog.Ctx(ctx).With().
		Str("operation", "low_stock_check").
		Int64("product_id", productID).
		Logger()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
	defer cancel()

	level, err := s.products.StockLevel(ctx, s.reader, productID)
	if err != nil {
		logger.Warn().Err(err).Msg("could not read stock level")
		return
	}

	if !level.IsLow() {
		return
	}

	if err := s.alerts.EnqueueLowStock(ctx, level); err != nil {
		logger.Warn().Err(err).Msg("could not enqueue low stock alert")
		return
	}

	logger.Info().
		Str("current_stock", level.CurrentStock.String()).
		Msg("low stock alert enqueued")
}
