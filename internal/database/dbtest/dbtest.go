//go:build integration

// Package dbtest starts a throwaway PostgreSQL container for integration tests.
//
// Run with: go test -tags integration ./...
package dbtest

import (
	"context"
	_ "embed"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

//go:embed schema.sql
var schemaSQL string

// Postgres is a running container with the schema applied.
type Postgres struct {
	URL  string
	Pool *pgxpool.Pool
}

// Start runs postgres:16-alpine, applies schema.sql and registers cleanup.
func Start(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx,
		"postgres:16-alpine",
		tcPostgres.WithDatabase("salon_test"),
		tcPostgres.WithUsername("salon"),
		tcPostgres.WithPassword("salon"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, schemaSQL)
	require.NoError(t, err)

	return &Postgres{URL: url, Pool: pool}
}

// Reset empties both tables and restarts their id sequences.
func (p *Postgres) Reset(t *testing.T) {
	t.Helper()
	_, err := p.Pool.Exec(context.Background(),
		"TRUNCATE material_consumption, products RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// InsertProduct inserts a product row directly, bypassing the service.
// Nil values are stored as NULL.
func (p *Postgres) InsertProduct(t *testing.T, name string, currentStock, minStock any) int64 {
	t.Helper()
	var id int64
	err := p.Pool.QueryRow(context.Background(),
		"INSERT INTO products (name, current_stock, min_stock) VALUES ($1, $2, $3) RETURNING id",
		name, currentStock, minStock,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
