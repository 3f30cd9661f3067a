package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecentConsumptionLimit caps GET table=material_consumption.
const RecentConsumptionLimit = 50

// Consumption is a material_consumption row joined with its product name.
type Consumption struct {
	ID              int64
	AppointmentID   *int64
	ProductName     *string
	QuantityUsed    decimal.Decimal
	ConsumptionDate time.Time
}

// ConsumptionView is the JSON representation returned by GET table=material_consumption.
type ConsumptionView struct {
	ID              int64   `json:"id"`
	AppointmentID   *int64  `json:"appointment_id"`
	ProductName     *string `json:"product_name"`
	QuantityUsed    float64 `json:"quantity_used"`
	ConsumptionDate string  `json:"consumption_date"`
}

// View converts the row for the response.
func (c Consumption) View() ConsumptionView {
	return ConsumptionView{
		ID:              c.ID,
		AppointmentID:   c.AppointmentID,
		ProductName:     c.ProductName,
		QuantityUsed:    c.QuantityUsed.InexactFloat64(),
		ConsumptionDate: FormatTimestamp(c.ConsumptionDate),
	}
}

// NewConsumption carries the columns written by add_consumption.
// ProductID and Quantity are nil when the body omitted them; the database
// then rejects the row.
type NewConsumption struct {
	ProductID     *int64
	Quantity      *decimal.Decimal
	AppointmentID *int64
}
