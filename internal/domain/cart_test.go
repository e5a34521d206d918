package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(id string, price int64, qty int, size string) CartItem {
	return CartItem{
		Product:      Product{ID: id, Price: decimal.NewFromInt(price)},
		Quantity:     qty,
		SelectedSize: size,
	}
}

// ============================================================================
// Summarize Tests
// ============================================================================

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.Subtotal.IsZero())
	assert.Equal(t, 0, s.TotalItems)

	s = Summarize([]CartItem{})
	assert.True(t, s.Subtotal.IsZero())
	assert.Equal(t, 0, s.TotalItems)
}

func TestSummarize_MultipleLines(t *testing.T) {
	items := []CartItem{
		item("1", 245, 2, "48"),
		item("2", 180, 1, "M"),
		item("6", 85, 3, ""),
	}

	s := Summarize(items)
	// 490 + 180 + 255
	assert.True(t, decimal.NewFromInt(925).Equal(s.Subtotal), "got %s", s.Subtotal)
	assert.Equal(t, 6, s.TotalItems)
}

func TestSummarize_TotalItemsSaturates(t *testing.T) {
	s := Summarize([]CartItem{
		item("1", 1, math.MaxInt, ""),
		item("2", 1, 5, ""),
	})
	assert.Equal(t, math.MaxInt, s.TotalItems)
	assert.True(t, s.Subtotal.IsPositive())
}

func TestSummarize_FractionalPrices(t *testing.T) {
	items := []CartItem{
		{Product: Product{ID: "a", Price: decimal.RequireFromString("0.10")}, Quantity: 3},
		{Product: Product{ID: "b", Price: decimal.RequireFromString("19.99")}, Quantity: 1},
	}

	s := Summarize(items)
	assert.Equal(t, "20.29", s.Subtotal.StringFixed(2))
}

func TestSummarize_Deterministic(t *testing.T) {
	items := []CartItem{item("1", 245, 1, "46"), item("3", 165, 4, "32")}

	first := Summarize(items)
	second := Summarize(items)
	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.Equal(t, first.TotalItems, second.TotalItems)
	assert.Equal(t, 1, items[0].Quantity, "input must not be modified")
}

func TestCartItem_Key(t *testing.T) {
	a := item("1", 245, 1, "48")
	b := item("1", 245, 5, "48")
	c := item("1", 245, 1, "50")

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Equal(t, LineKey{ProductID: "1", Size: "48"}, a.Key())
}
