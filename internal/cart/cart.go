package cart

import (
	"github.com/frahmantamala/marketplace-storefront/internal/product"
	"github.com/shopspring/decimal"
)

// Item is a product snapshot plus a quantity. It serializes flat, the
// product fields alongside "quantity".
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i Item) Clone() Item {
	return Item{Product: i.Product.Clone(), Quantity: i.Quantity}
}

// Every function below returns a fresh slice and leaves its input untouched.

func find(items []Item, productID string) int {
	for i := range items {
		if items[i].ID == productID {
			return i
		}
	}
	return -1
}

func Contains(items []Item, productID string) bool {
	return find(items, productID) >= 0
}

// Add increments the quantity of an existing line or appends a new one.
func Add(items []Item, p product.Product) []Item {
	out := clone(items)
	if i := find(out, p.ID); i >= 0 {
		out[i].Quantity++
		return out
	}
	return append(out, Item{Product: p.Clone(), Quantity: 1})
}

// SetQuantity sets an exact quantity; zero or less removes the line.
func SetQuantity(items []Item, productID string, quantity int) []Item {
	if quantity <= 0 {
		return Remove(items, productID)
	}
	out := clone(items)
	if i := find(out, productID); i >= 0 {
		out[i].Quantity = quantity
	}
	return out
}

func Remove(items []Item, productID string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != productID {
			out = append(out, it.Clone())
		}
	}
	return out
}

// Refresh replaces the product snapshot of a line, keeping its quantity.
func Refresh(items []Item, p product.Product) []Item {
	out := clone(items)
	if i := find(out, p.ID); i >= 0 {
		out[i].Product = p.Clone()
	}
	return out
}

// Total is the sum of discount-or-list price times quantity.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func Count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
