package handler

import "net/http"

// Route is one of the finite set of operations the db-api serves.
type Route int

const (
	RouteInvalid Route = iota
	RouteListProducts
	RouteListConsumptions
	RouteAddConsumption
	RouteAddProduct
)

// Selector values accepted in the table query parameter and the action body field.
const (
	TableProducts            = "products"
	TableMaterialConsumption = "material_consumption"

	ActionAddConsumption = "add_consumption"
	ActionAddProduct     = "add_product"
)

func (r Route) String() string {
	switch r {
	case RouteListProducts:
		return "list_products"
	case RouteListConsumptions:
		return "list_consumptions"
	case RouteAddConsumption:
		return "add_consumption"
	case RouteAddProduct:
		return "add_product"
	default:
		return "invalid"
	}
}

// ResolveRoute maps a request selector to a Route. GET requests select on
// table, POST requests on action; every other combination is RouteInvalid.
func ResolveRoute(method, table, action string) Route {
	switch method {
	case http.MethodGet:
		switch table {
		case TableProducts:
			return RouteListProducts
		case TableMaterialConsumption:
			return RouteListConsumptions
		}
	case http.MethodPost:
		switch action {
		case ActionAddConsumption:
			return RouteAddConsumption
		case ActionAddProduct:
			return RouteAddProduct
		}
	}
	return RouteInvalid
}
