package email

// Template names an embedded email template.
type Template string

const (
	// TemplateLowStock corresponds to templates/low_stock.html
	TemplateLowStock Template = "low_stock"
)

func (t Template) file() string {
	return string(t) + ".html"
}
