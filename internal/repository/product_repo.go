package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/model"
)

const (
	listProductsSQL = `
		SELECT id, name, description, price, unit, purchase_price,
		       min_stock, current_stock, expiry_date
		FROM products
		ORDER BY id`

	insertProductSQL = `
		INSERT INTO products (name, description, price, current_stock, min_stock, unit)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	decrementStockSQL = `
		UPDATE products
		SET current_stock = current_stock - $1
		WHERE id = $2`

	stockLevelSQL = `
		SELECT id, COALESCE(name, ''), COALESCE(current_stock, 0), min_stock
		FROM products
		WHERE id = $1`
)

// ProductRepository runs statements against the products table.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// List returns every product ordered by id.
func (r *ProductRepository) List(ctx context.Context, db DBTX) ([]model.Product, error) {
	rows, err := db.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		var p model.Product
		err := row.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Unit,
			&p.PurchasePrice,
			&p.MinStock,
			&p.CurrentStock,
			&p.ExpiryDate,
		)
		return p, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan products")
	}

	return products, nil
}

// Create inserts a product and returns its generated id.
func (r *ProductRepository) Create(ctx context.Context, db DBTX, p model.NewProduct) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, insertProductSQL,
		p.Name,
		p.Description,
		p.Price,
		p.CurrentStock,
		p.MinStock,
		p.Unit,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert product")
	}
	return id, nil
}

// DecrementStock subtracts quantity from the product's current_stock.
// An unknown product id updates nothing and is not an error.
func (r *ProductRepository) DecrementStock(ctx context.Context, db DBTX, productID *int64, quantity *decimal.Decimal) error {
	if _, err := db.Exec(ctx, decrementStockSQL, quantity, productID); err != nil {
		return errors.Wrap(err, "decrement stock")
	}
	return nil
}

// StockLevel reads the current stock and minimum of one product.
func (r *ProductRepository) StockLevel(ctx context.Context, db DBTX, productID int64) (model.StockLevel, error) {
	var s model.StockLevel
	err := db.QueryRow(ctx, stockLevelSQL, productID).Scan(&s.ProductID, &s.Name, &s.CurrentStock, &s.MinStock)
	if err != nil {
		return model.StockLevel{}, errors.Wrapf(err, "read stock level of product %d", productID)
	}
	return s, nil
}
