package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/model"
)

const (
	listRecentConsumptionsSQL = `
		SELECT mc.id, mc.appointment_id, p.name, mc.quantity_used,
		       mc.consumption_date
		FROM material_consumption mc
		JOIN products p ON mc.product_id = p.id
		ORDER BY mc.consumption_date DESC
		LIMIT $1`

	insertConsumptionSQL = `
		INSERT INTO material_consumption (product_id, quantity_used, appointment_id)
		VALUES ($1, $2, $3)
		RETURNING id`
)

// ConsumptionRepository runs statements against the material_consumption table.
type ConsumptionRepository struct{}

func NewConsumptionRepository() *ConsumptionRepository {
	return &ConsumptionRepository{}
}

// ListRecent returns up to limit records, newest consumption_date first.
func (r *ConsumptionRepository) ListRecent(ctx context.Context, db DBTX, limit int) ([]model.Consumption, error) {
	rows, err := db.Query(ctx, listRecentConsumptionsSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query material consumption")
	}

	consumptions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Consumption, error) {
		var c model.Consumption
		err := row.Scan(
			&c.ID,
			&c.AppointmentID,
			&c.ProductName,
			&c.QuantityUsed,
			&c.ConsumptionDate,
		)
		return c, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan material consumption")
	}

	return consumptions, nil
}

// Create inserts a consumption record and returns its generated id.
// consumption_date is left to the column default.
func (r *ConsumptionRepository) Create(ctx context.Context, db DBTX, c model.NewConsumption) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, insertConsumptionSQL, c.ProductID, c.Quantity, c.AppointmentID).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert material consumption")
	}
	return id, nil
}
