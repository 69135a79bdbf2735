package favorite

import "github.com/frahmantamala/marketplace-storefront/internal/product"

// Favorites are unique by product id and kept in insertion order.

func Contains(favorites []product.Product, productID string) bool {
	return product.FindByID(favorites, productID) >= 0
}

// Toggle removes p when present and appends it otherwise. It reports whether
// p is a favorite afterwards.
func Toggle(favorites []product.Product, p product.Product) ([]product.Product, bool) {
	if Contains(favorites, p.ID) {
		return Remove(favorites, p.ID), false
	}
	out := make([]product.Product, 0, len(favorites)+1)
	for _, f := range favorites {
		out = append(out, f.Clone())
	}
	return append(out, p.Clone()), true
}

func Remove(favorites []product.Product, productID string) []product.Product {
	out := make([]product.Product, 0, len(favorites))
	for _, f := range favorites {
		if f.ID != productID {
			out = append(out, f.Clone())
		}
	}
	return out
}

// Refresh swaps in the latest snapshot of p if it is a favorite.
func Refresh(favorites []product.Product, p product.Product) []product.Product {
	out := make([]product.Product, len(favorites))
	for i, f := range favorites {
		if f.ID == p.ID {
			out[i] = p.Clone()
		} else {
			out[i] = f.Clone()
		}
	}
	return out
}
