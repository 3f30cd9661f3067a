package model

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// DefaultUnit is stored on every product created through add_product.
const DefaultUnit = "pieces"

// DefaultMinStock is used when add_product omits min_stock.
const DefaultMinStock int64 = 1

// Product is a row of the products table as scanned from storage.
type Product struct {
	ID            int64
	Name          *string
	Description   *string
	Price         decimal.NullDecimal
	Unit          *string
	PurchasePrice decimal.NullDecimal
	MinStock      *int64
	CurrentStock  decimal.NullDecimal
	ExpiryDate    pgtype.Date
}

// ProductView is the JSON representation returned by GET table=products.
type ProductView struct {
	ID            int64   `json:"id"`
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         float64 `json:"price"`
	Unit          *string `json:"unit"`
	PurchasePrice float64 `json:"purchase_price"`
	MinStock      *int64  `json:"min_stock"`
	CurrentStock  float64 `json:"current_stock"`
	ExpiryDate    *string `json:"expiry_date"`
}

// View converts the row, substituting defaults for nullable columns.
func (p Product) View() ProductView {
	return ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         DecimalOrZero(p.Price),
		Unit:          p.Unit,
		PurchasePrice: DecimalOrZero(p.PurchasePrice),
		MinStock:      p.MinStock,
		CurrentStock:  DecimalOrZero(p.CurrentStock),
		ExpiryDate:    DateOrNil(p.ExpiryDate),
	}
}

// NewProduct carries the columns written by add_product.
// Nil pointers are stored as NULL; defaults for omitted fields are applied
// while decoding the request.
type NewProduct struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	CurrentStock *decimal.Decimal
	MinStock     *int64
	Unit         string
}

// StockLevel is the post-decrement stock of a product, used for low-stock alerts.
type StockLevel struct {
	ProductID    int64
	Name         string
	CurrentStock decimal.Decimal
	MinStock     *int64
}

// IsLow reports whether stock is at or below the product's minimum.
// Products without a minimum are never low.
func (s StockLevel) IsLow() bool {
	if s.MinStock == nil {
		return false
	}
	return s.CurrentStock.LessThanOrEqual(decimal.NewFromInt(*s.MinStock))
}
