package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog record. Title doubles as the cart-line
// identity key; resolution back from a cart is case-insensitive.
type Product struct {
	Title  string
	Vendor string
	Price  decimal.Decimal
	Image  string
}

// Category groups products under a case-insensitive name. Product order
// within a category is the display order and is preserved everywhere.
type Category struct {
	Name     string
	Products []Product
}

// Catalog is the root collection for a session. It is built once from the
// remote feed and never mutated afterwards; a re-fetch replaces it wholesale.
type Catalog struct {
	Categories []Category
}

// FindProduct resolves a title to its product, matching case-insensitively.
// The first occurrence in catalog order wins.
func (c Catalog) FindProduct(title string) (Product, bool) {
	for _, cat := range c.Categories {
		for _, p := range cat.Products {
			if strings.EqualFold(p.Title, title) {
				return p, true
			}
		}
	}
	return Product{}, false
}
