package store

import (
	"github.com/frahmantamala/marketplace-storefront/internal/banner"
	"github.com/frahmantamala/marketplace-storefront/internal/cart"
	"github.com/frahmantamala/marketplace-storefront/internal/category"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
	"github.com/frahmantamala/marketplace-storefront/internal/user"
	"github.com/shopspring/decimal"
)

// Snapshot is a deep copy of the store. Changing it never affects the store.
type Snapshot struct {
	Ready         bool                `json:"ready"`
	Version       uint64              `json:"version"`
	Session       user.User           `json:"user"`
	Users         []user.User         `json:"users"`
	Cart          []cart.Item         `json:"cart"`
	Favorites     []product.Product   `json:"favorites"`
	Categories    []category.Category `json:"categories"`
	Products      []product.Product   `json:"products"`
	TopBanners    banner.Slots        `json:"topBanners"`
	FooterBanners banner.Slots        `json:"footerBanners"`
	CartTotal     decimal.Decimal     `json:"cartTotal"`
	Permissions   user.Permissions    `json:"permissions"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	snap := Snapshot{
		Ready:         s.ready,
		Version:       s.version,
		Session:       s.sessionLocked(),
		Users:         cloneUsers(st.users),
		Cart:          cloneCart(st.cart),
		Favorites:     cloneProducts(st.favorites),
		Categories:    append([]category.Category{}, st.categories...),
		Products:      cloneProducts(st.products),
		TopBanners:    nonNil(st.topBanners.Clone()),
		FooterBanners: nonNil(st.footerBanners.Clone()),
		CartTotal:     cart.Total(st.cart),
	}
	snap.Permissions = permissionsOf(snap.Session)
	return snap
}

// Session is the current user, or the guest sentinel before hydration.
func (s *Store) Session() user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionLocked()
}

func (s *Store) sessionLocked() user.User {
	if !s.ready {
		return user.Guest()
	}
	return s.state.session
}

// Permissions are the session user's flags; the guest has none.
func (s *Store) Permissions() user.Permissions {
	return permissionsOf(s.Session())
}

// CartTotal sums discountPrice, or price when there is no discount, times quantity.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.Total(s.state.cart)
}

func permissionsOf(u user.User) user.Permissions {
	if u.IsGuest() {
		return user.Permissions{}
	}
	return u.Permissions
}

func cloneCart(items []cart.Item) []cart.Item {
	out := make([]cart.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func cloneProducts(products []product.Product) []product.Product {
	out := make([]product.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
