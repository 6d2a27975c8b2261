package domain

import (
	"github.com/shopspring/decimal"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// LineItem is a cart entry resolved against the catalog: the product, the
// selected quantity, and the computed line total.
type LineItem struct {
	Product   catalogdomain.Product
	Quantity  int
	LineTotal decimal.Decimal
}
