// Package repository handles all interactions with the database.
//
// It contains the raw SQL statements for the products and
// material_consumption tables. Every method receives the DBTX it runs on,
// which is the request-scoped transaction opened by the handler.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx.Tx / *pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Products     *ProductRepository
	Consumptions *ConsumptionRepository
}

// NewRepositories constructs the repository container.
func NewRepositories() *Repositories {
	return &Repositories{
		Products:     NewProductRepository(),
		Consumptions: NewConsumptionRepository(),
	}
}
