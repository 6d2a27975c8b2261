package app

import (
	"strings"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// Resolver maps a cart entry's title back to its product. A false return
// means the product is no longer in the catalog; the entry is skipped.
type Resolver func(title string) (catalogdomain.Product, bool)

type entry struct {
	title string // first-seen casing, used for resolution and display
	qty   int
}

// Ledger tracks selected products and their quantities for one session.
// Keys are case-folded once at insertion, so "Shirt" and "shirt" land on
// the same entry. Quantities are always >= 1; an entry that would reach
// zero is deleted instead. Insertion order is kept for stable display.
//
// The ledger holds titles only, never product records; callers supply a
// Resolver when they need prices. None of the operations return errors:
// missing entries, missing products, and boundary quantities all degrade
// to no-ops or skips.
type Ledger struct {
	entries map[string]*entry
	order   []string
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]*entry)}
}

func ledgerKey(title string) string {
	return strings.ToLower(title)
}

// Add puts a product in the cart at quantity 1, or bumps its quantity by 1
// if it is already there.
func (l *Ledger) Add(title string) {
	key := ledgerKey(title)
	if e, ok := l.entries[key]; ok {
		e.qty++
		return
	}
	l.entries[key] = &entry{title: title, qty: 1}
	l.order = append(l.order, key)
}

// Increase bumps an existing entry's quantity by 1. It never creates an
// entry: increasing something that is not in the cart is a no-op.
func (l *Ledger) Increase(title string) {
	if e, ok := l.entries[ledgerKey(title)]; ok {
		e.qty++
	}
}

// Decrease lowers an existing entry's quantity by 1, but never below 1.
// Removal is a separate, explicit operation.
func (l *Ledger) Decrease(title string) {
	if e, ok := l.entries[ledgerKey(title)]; ok && e.qty > 1 {
		e.qty--
	}
}

// Remove deletes an entry regardless of quantity. No-op if absent.
func (l *Ledger) Remove(title string) {
	key := ledgerKey(title)
	if _, ok := l.entries[key]; !ok {
		return
	}
	delete(l.entries, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// TotalItemCount is the sum of all quantities, for the cart badge.
func (l *Ledger) TotalItemCount() int {
	total := 0
	for _, e := range l.entries {
		total += e.qty
	}
	return total
}

// LineItems resolves every entry through resolve and returns the lines in
// insertion order. Entries whose product cannot be resolved are skipped.
func (l *Ledger) LineItems(resolve Resolver) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(l.order))
	for _, key := range l.order {
		e := l.entries[key]
		p, ok := resolve(e.title)
		if !ok {
			continue
		}
		out = append(out, domain.LineItem{
			Product:   p,
			Quantity:  e.qty,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(e.qty))),
		})
	}
	return out
}

// GrandTotal sums the line totals of every resolvable entry.
func (l *Ledger) GrandTotal(resolve Resolver) decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.LineItems(resolve) {
		total = total.Add(item.LineTotal)
	}
	return total
}
