package email

// PreviewData holds sample template data for local preview.
var PreviewData = map[Template]any{
	TemplateLowStock: LowStockData{
		ProductID:    12,
		ProductName:  "Hair dye, copper",
		CurrentStock: "0.5",
		MinStock:     2,
	},
}
