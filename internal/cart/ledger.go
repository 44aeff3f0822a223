// Package cart holds the mutable line-item ledger of an in-progress sale.
package cart

import (
	"github.com/shopspring/decimal"

	"pos-service/internal/models"
)

// Ledger is an ordered collection of line items, unique by product id.
// It is not safe for concurrent use; the owning session serializes access.
type Ledger struct {
	items []models.LineItem
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add inserts a product at quantity 1, or increments the quantity of an
// existing line item. The catalog price, image and chosen size are captured
// on first add.
func (l *Ledger) Add(p models.Product, size string) {
	for i := range l.items {
		if l.items[i].ProductID == p.ID {
			l.items[i].Quantity++
			return
		}
	}

	l.items = append(l.items, models.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		UnitPrice: p.Price,
		Quantity:  1,
		Size:      size,
	})
}

// UpdateQuantity adds delta to an item's quantity, clamped at zero.
// An item reaching zero is removed, never kept as a zero-quantity row.
func (l *Ledger) UpdateQuantity(productID int64, delta int) error {
	for i := range l.items {
		if l.items[i].ProductID != productID {
			continue
		}

		q := l.items[i].Quantity + delta
		if q <= 0 {
			l.items = append(l.items[:i], l.items[i+1:]...)
		} else {
			l.items[i].Quantity = q
		}
		return nil
	}
	return models.NewNotFoundError("item not in cart")
}

// ApplyEdit overwrites an item's unit price and quantity, used for manual
// price negotiation at the counter. Invalid values reject without mutating.
func (l *Ledger) ApplyEdit(productID int64, newPrice decimal.Decimal, newQuantity int) error {
	if newPrice.IsNegative() {
		return models.NewValidationError("price must not be negative")
	}
	if newQuantity < 1 {
		return models.NewValidationError("quantity must be a positive integer")
	}

	for i := range l.items {
		if l.items[i].ProductID == productID {
			l.items[i].UnitPrice = newPrice
			l.items[i].Quantity = newQuantity
			return nil
		}
	}
	return models.NewNotFoundError("item not in cart")
}

// Remove deletes a line item unconditionally.
func (l *Ledger) Remove(productID int64) {
	for i := range l.items {
		if l.items[i].ProductID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// Total sums price times quantity over all line items.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Items returns a copy of the ledger's line items in insertion order.
func (l *Ledger) Items() []models.LineItem {
	out := make([]models.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Empty reports whether the ledger has no line items.
func (l *Ledger) Empty() bool {
	return len(l.items) == 0
}

// Clear removes all line items.
func (l *Ledger) Clear() {
	l.items = nil
}
