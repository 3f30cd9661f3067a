package email

import (
	"context"
	"fmt"
)

// LowStockData is the data available to the low_stock template.
type LowStockData struct {
	ProductID    int64
	ProductName  string
	CurrentStock string
	MinStock     int64
}

// SendLowStockEmail notifies to that a product reached its minimum stock.
func (c *Client) SendLowStockEmail(ctx context.Context, to string, data LowStockData) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("Low stock: %s", data.ProductName),
		TemplateLowStock,
		data,
	)
}
