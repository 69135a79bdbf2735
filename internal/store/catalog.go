package store

import (
	"context"
	"strconv"

	"github.com/frahmantamala/marketplace-storefront/internal/cart"
	"github.com/frahmantamala/marketplace-storefront/internal/category"
	"github.com/frahmantamala/marketplace-storefront/internal/favorite"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
)

// AddProduct validates data, stamps it with a fresh time-based id and the
// session's display name, and puts it first in the catalog.
func (s *Store) AddProduct(ctx context.Context, data product.NewProduct) (product.Product, error) {
	var created product.Product
	err := s.apply(ctx, "add_product", func(st *state) ([]string, error) {
		p := data.ToProduct(s.ids.Next(), st.session.Name)
		if err := p.Validate(); err != nil {
			return nil, err
		}
		products := make([]product.Product, 0, len(st.products)+1)
		products = append(products, p)
		products = append(products, st.products...)
		st.products = products
		created = p.Clone()
		return []string{SliceProducts}, nil
	})
	return created, err
}

// UpdateProduct replaces the product with the same id. Cart and favorites entries
// pick up the new snapshot. An unknown id is a no-op.
func (s *Store) UpdateProduct(ctx context.Context, p product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p = p.Clone()

	return s.apply(ctx, "update_product", func(st *state) ([]string, error) {
		idx := product.FindByID(st.products, p.ID)
		if idx < 0 {
			return nil, nil
		}
		products := make([]product.Product, len(st.products))
		copy(products, st.products)
		products[idx] = p
		st.products = products

		changed := []string{SliceProducts}
		if cart.Contains(st.cart, p.ID) {
			st.cart = cart.Refresh(st.cart, p)
			changed = append(changed, SliceCart)
		}
		if favorite.Contains(st.favorites, p.ID) {
			st.favorites = favorite.Refresh(st.favorites, p)
			changed = append(changed, SliceFavorites)
		}
		return changed, nil
	})
}

// DeleteProduct removes the product and prunes it from cart and favorites.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.apply(ctx, "delete_product", func(st *state) ([]string, error) {
		idx := product.FindByID(st.products, id)
		if idx < 0 {
			return nil, nil
		}
		products := make([]product.Product, 0, len(st.products)-1)
		products = append(products, st.products[:idx]...)
		products = append(products, st.products[idx+1:]...)
		st.products = products

		changed := []string{SliceProducts}
		if cart.Contains(st.cart, id) {
			st.cart = cart.Remove(st.cart, id)
			changed = append(changed, SliceCart)
		}
		if favorite.Contains(st.favorites, id) {
			st.favorites = favorite.Remove(st.favorites, id)
			changed = append(changed, SliceFavorites)
		}
		return changed, nil
	})
}

// AddCategory appends a category. Blank and duplicate names are rejected.
func (s *Store) AddCategory(ctx context.Context, name string) (category.Category, error) {
	var created category.Category
	err := s.apply(ctx, "add_category", func(st *state) ([]string, error) {
		categories, c, err := category.Append(st.categories, name)
		if err != nil {
			return nil, err
		}
		st.categories = categories
		created = c
		return []string{SliceCategories}, nil
	})
	return created, err
}

// nextCountID is count+1, bumped until taken reports false.
func nextCountID(count int, taken func(id string) bool) string {
	n := count + 1
	for taken(strconv.Itoa(n)) {
		n++
	}
	return strconv.Itoa(n)
}
