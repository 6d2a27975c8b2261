package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// ErrLoadFailed marks any failure to produce a complete, valid catalog:
// transport errors, bad status, malformed JSON, or records that fail
// validation. Callers get either a full catalog or this error, never a
// partial one.
var ErrLoadFailed = errors.New("catalog load failed")

// Feed wire shape, as served by the Shopify CDN. Prices arrive as either
// numbers or numeric strings depending on the product; decimal handles both.
type feedProduct struct {
	Title  string          `json:"title" validate:"required"`
	Price  decimal.Decimal `json:"price"`
	Vendor string          `json:"vendor" validate:"required"`
	Image  string          `json:"image"`
}

type feedCategory struct {
	Name     string        `json:"category_name" validate:"required"`
	Products []feedProduct `json:"category_products" validate:"dive"`
}

type feed struct {
	Categories []feedCategory `json:"categories" validate:"required,dive"`
}

type Loader struct {
	client   *http.Client
	validate *validator.Validate
}

func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Loader{
		client:   client,
		validate: validator.New(),
	}
}

// Load fetches the feed at url and builds the session catalog. Validation
// happens here, once, so downstream code never sees a product without a
// title or with a negative price.
func (l *Loader) Load(ctx context.Context, url string) (domain.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Catalog{}, fmt.Errorf("%w: unexpected status %d", ErrLoadFailed, resp.StatusCode)
	}

	var f feed
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: decode feed: %v", ErrLoadFailed, err)
	}

	catalog, err := l.build(f)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return catalog, nil
}

func (l *Loader) build(f feed) (domain.Catalog, error) {
	if err := l.validate.Struct(f); err != nil {
		return domain.Catalog{}, fmt.Errorf("validate feed: %v", err)
	}

	catalog := domain.Catalog{Categories: make([]domain.Category, 0, len(f.Categories))}
	for _, fc := range f.Categories {
		cat := domain.Category{
			Name:     fc.Name,
			Products: make([]domain.Product, 0, len(fc.Products)),
		}
		for _, fp := range fc.Products {
			if fp.Price.IsNegative() {
				return domain.Catalog{}, fmt.Errorf("product %q: negative price %s", fp.Title, fp.Price)
			}
			cat.Products = append(cat.Products, domain.Product{
				Title:  fp.Title,
				Vendor: fp.Vendor,
				Price:  fp.Price,
				Image:  fp.Image,
			})
		}
		catalog.Categories = append(catalog.Categories, cat)
	}
	return catalog, nil
}
