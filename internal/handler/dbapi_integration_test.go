//go:build integration

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/config"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/database/dbtest"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/event"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/repository"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/service"
)

func TestDBAPI_Postgres(t *testing.T) {
	pg := dbtest.Start(t)
	ctx := context.Background()

	repos := repository.NewRepositories()
	logger := zerolog.Nop()
	h := NewDBAPIHandler(
		config.DatabaseConfig{URL: pg.URL},
		pg.Pool,
		service.NewInventoryService(repos.Products, repos.Consumptions),
		&logger,
	)

	stock := func(t *testing.T, id int64) decimal.Decimal {
		t.Helper()
		var d decimal.Decimal
		require.NoError(t, pg.Pool.QueryRow(ctx, "SELECT current_stock FROM products WHERE id = $1", id).Scan(&d))
		return d
	}

	consumptionCount := func(t *testing.T) int {
		t.Helper()
		var n int
		require.NoError(t, pg.Pool.QueryRow(ctx, "SELECT count(*) FROM material_consumption").Scan(&n))
		return n
	}

	t.Run("null columns are coerced", func(t *testing.T) {
		pg.Reset(t)
		pg.InsertProduct(t, "Cotton pads", nil, nil)

		res := h.Handle(ctx, event.Request{HTTPMethod: http.MethodGet})
		require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
		assert.JSONEq(t, `{"products":[
			{"id":1,"name":"Cotton pads","description":null,"price":0,"unit":null,"purchase_price":0,"min_stock":null,"current_stock":0,"expiry_date":null}
		]}`, res.Body)
	})

	t.Run("add consumption decrements stock", func(t *testing.T) {
		pg.Reset(t)
		pg.InsertProduct(t, "Gloves", 1, 1)
		pg.InsertProduct(t, "Foil", 1, 1)
		id := pg.InsertProduct(t, "Shampoo", "10.00", 2)
		require.Equal(t, int64(3), id)

		res := h.Handle(ctx, event.Request{
			HTTPMethod: http.MethodPost,
			Body:       `{"action":"add_consumption","product_id":3,"quantity":2.5}`,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
		assert.JSONEq(t, `{"id":1,"success":true}`, res.Body)
		assert.Equal(t, "7.5", stock(t, id).String())

		res = h.Handle(ctx, event.Request{
			HTTPMethod:            http.MethodGet,
			QueryStringParameters: map[string]string{"table": TableMaterialConsumption},
		})
		require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
		assert.Contains(t, res.Body, `"product_name":"Shampoo"`)
		assert.Contains(t, res.Body, `"quantity_used":2.5`)
	})

	t.Run("add product applies defaults", func(t *testing.T) {
		pg.Reset(t)

		res := h.Handle(ctx, event.Request{
			HTTPMethod: http.MethodPost,
			Body:       `{"action":"add_product","name":"Shampoo","price":15.0}`,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
		assert.JSONEq(t, `{"id":1,"success":true}`, res.Body)

		var (
			currentStock decimal.Decimal
			minStock     int64
			unit         string
		)
		require.NoError(t, pg.Pool.QueryRow(ctx,
			"SELECT current_stock, min_stock, unit FROM products WHERE id = 1",
		).Scan(&currentStock, &minStock, &unit))
		assert.True(t, currentStock.IsZero())
		assert.Equal(t, int64(1), minStock)
		assert.Equal(t, "pieces", unit)
	})

	t.Run("failed decrement rolls back the insert", func(t *testing.T) {
		pg.Reset(t)
		id := pg.InsertProduct(t, "Dye", "-99999999.00", 1)

		res := h.Handle(ctx, event.Request{
			HTTPMethod: http.MethodPost,
			Body:       `{"action":"add_consumption","product_id":1,"quantity":5}`,
		})
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Contains(t, res.Body, "numeric field overflow")
		assert.Zero(t, consumptionCount(t))
		assert.Equal(t, "-99999999", stock(t, id).String())
	})

	t.Run("unknown product is a 500 with the server message", func(t *testing.T) {
		pg.Reset(t)

		res := h.Handle(ctx, event.Request{
			HTTPMethod: http.MethodPost,
			Body:       `{"action":"add_consumption","product_id":42,"quantity":1}`,
		})
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Contains(t, res.Body, "violates foreign key constraint")
		assert.Zero(t, consumptionCount(t))
	})

	t.Run("missing quantity is rejected by the database", func(t *testing.T) {
		pg.Reset(t)
		pg.InsertProduct(t, "Gel", 3, 1)

		res := h.Handle(ctx, event.Request{
			HTTPMethod: http.MethodPost,
			Body:       `{"action":"add_consumption","product_id":1}`,
		})
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Contains(t, res.Body, "quantity_used")
		assert.Zero(t, consumptionCount(t))
	})
}
