package app

import (
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// Mode selects which query an Index answers for a view. Search and category
// filtering replace the same display area in the UI, so a view carries
// exactly one mode rather than letting callers combine them by accident.
type Mode int

const (
	ModeAll Mode = iota
	ModeCategories
	ModeSearch
)

// View is the caller-owned "what is on screen" value.
type View struct {
	Mode       Mode
	Categories []string
	Query      string
}

// Index answers filter and search queries over one immutable catalog.
// It holds no other state and never mutates the catalog it wraps.
type Index struct {
	catalog domain.Catalog
}

func NewIndex(catalog domain.Catalog) *Index {
	return &Index{catalog: catalog}
}

// Catalog returns the catalog the index was built from.
func (ix *Index) Catalog() domain.Catalog {
	return ix.catalog
}

// Products dispatches a view to the single query its mode names.
func (ix *Index) Products(v View) []domain.Product {
	switch v.Mode {
	case ModeCategories:
		return ix.ByCategories(v.Categories)
	case ModeSearch:
		return ix.Search(v.Query)
	default:
		return ix.All()
	}
}

// All returns every product in catalog enumeration order.
func (ix *Index) All() []domain.Product {
	out := make([]domain.Product, 0)
	for _, cat := range ix.catalog.Categories {
		out = append(out, cat.Products...)
	}
	return out
}

// ByCategories returns the products of each selected category, concatenated
// in the order the identifiers were supplied. Category names match
// case-insensitively; identifiers matching no category contribute nothing.
// Overlapping identifiers pass through without deduplication.
func (ix *Index) ByCategories(selected []string) []domain.Product {
	out := make([]domain.Product, 0)
	for _, id := range selected {
		for _, cat := range ix.catalog.Categories {
			if strings.EqualFold(cat.Name, id) {
				out = append(out, cat.Products...)
			}
		}
	}
	return out
}

// Search returns every product whose title, vendor, or owning category name
// contains text, case-insensitively, in catalog enumeration order. Empty
// text matches everything.
func (ix *Index) Search(text string) []domain.Product {
	needle := strings.ToLower(text)

	out := make([]domain.Product, 0)
	for _, cat := range ix.catalog.Categories {
		catName := strings.ToLower(cat.Name)
		for _, p := range cat.Products {
			if strings.Contains(strings.ToLower(p.Title), needle) ||
				strings.Contains(strings.ToLower(p.Vendor), needle) ||
				strings.Contains(catName, needle) {
				out = append(out, p)
			}
		}
	}
	return out
}
