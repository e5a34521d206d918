package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// CartItem is one cart line: a product snapshot plus a quantity and the size
// chosen for it. Quantity is always at least 1.
type CartItem struct {
	Product
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selectedSize,omitempty"`
}

// LineKey identifies a cart line. Two items are the same line only when both
// the product id and the selected size match exactly.
type LineKey struct {
	ProductID string
	Size      string
}

// Key returns the line identity of the item.
func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.ID, Size: i.SelectedSize}
}

// LineTotal returns price multiplied by quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Summary is the derived total of a cart.
type Summary struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalItems int             `json:"totalItems"`
}

// Summarize folds items into their subtotal and total quantity. It has no
// side effects and an empty input yields the zero summary. TotalItems
// saturates at MaxInt.
func Summarize(items []CartItem) Summary {
	s := Summary{Subtotal: decimal.Zero}
	for _, item := range items {
		s.Subtotal = s.Subtotal.Add(item.LineTotal())
		if s.TotalItems > math.MaxInt-item.Quantity {
			s.TotalItems = math.MaxInt
		} else {
			s.TotalItems += item.Quantity
		}
	}
	return s
}
