package store

import (
	"context"

	"github.com/frahmantamala/marketplace-storefront/internal/cart"
	"github.com/frahmantamala/marketplace-storefront/internal/favorite"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
)

// AddToCart adds one unit of p, creating the line if needed.
func (s *Store) AddToCart(ctx context.Context, p product.Product) error {
	return s.apply(ctx, "add_to_cart", func(st *state) ([]string, error) {
		st.cart = cart.Add(st.cart, p)
		return []string{SliceCart}, nil
	})
}

func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	return s.apply(ctx, "remove_from_cart", func(st *state) ([]string, error) {
		if !cart.Contains(st.cart, productID) {
			return nil, nil
		}
		st.cart = cart.Remove(st.cart, productID)
		return []string{SliceCart}, nil
	})
}

// UpdateCartItemQuantity sets the quantity exactly. Zero or less removes the line.
func (s *Store) UpdateCartItemQuantity(ctx context.Context, productID string, quantity int) error {
	return s.apply(ctx, "update_cart_quantity", func(st *state) ([]string, error) {
		if !cart.Contains(st.cart, productID) {
			return nil, nil
		}
		st.cart = cart.SetQuantity(st.cart, productID, quantity)
		return []string{SliceCart}, nil
	})
}

func (s *Store) ClearCart(ctx context.Context) error {
	return s.apply(ctx, "clear_cart", func(st *state) ([]string, error) {
		st.cart = nil
		return []string{SliceCart}, nil
	})
}

func (s *Store) IsFavorite(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return favorite.Contains(s.state.favorites, productID)
}

// ToggleFavorite adds or removes p and reports whether it is a favorite afterwards.
func (s *Store) ToggleFavorite(ctx context.Context, p product.Product) (bool, error) {
	var now bool
	err := s.apply(ctx, "toggle_favorite", func(st *state) ([]string, error) {
		st.favorites, now = favorite.Toggle(st.favorites, p)
		return []string{SliceFavorites}, nil
	})
	return now, err
}

// UpdateTopBanner replaces slot index; a nil image clears it. An index outside the strip is ignored.
func (s *Store) UpdateTopBanner(ctx context.Context, index int, image *string) error {
	return s.updateBanner(ctx, SliceTopBanners, index, image)
}

func (s *Store) UpdateFooterBanner(ctx context.Context, index int, image *string) error {
	return s.updateBanner(ctx, SliceFooterBanners, index, image)
}

func (s *Store) updateBanner(ctx context.Context, slice string, index int, image *string) error {
	return s.apply(ctx, "update_banner", func(st *state) ([]string, error) {
		slots := &st.topBanners
		if slice == SliceFooterBanners {
			slots = &st.footerBanners
		}
		next, ok := (*slots).Set(index, image)
		if !ok {
			s.log(ctx).Warn("banner index out of range", "slice", slice, "index", index, "slots", len(*slots))
			return nil, nil
		}
		*slots = next
		return []string{slice}, nil
	})
}
