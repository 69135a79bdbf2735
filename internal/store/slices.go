package store

import (
	"encoding/json"
	"fmt"

	"github.com/frahmantamala/marketplace-storefront/internal/banner"
	"github.com/frahmantamala/marketplace-storefront/internal/cart"
	"github.com/frahmantamala/marketplace-storefront/internal/category"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
	"github.com/frahmantamala/marketplace-storefront/internal/user"
)

// Persisted slice keys.
const (
	SliceUser          = "user"
	SliceUsers         = "users"
	SliceCart          = "cart"
	SliceFavorites     = "favorites"
	SliceCategories    = "categories"
	SliceProducts      = "products"
	SliceTopBanners    = "topBanners"
	SliceFooterBanners = "footerBanners"
)

// Slices lists every persisted key in hydration order.
var Slices = []string{
	SliceUser,
	SliceUsers,
	SliceCart,
	SliceFavorites,
	SliceCategories,
	SliceProducts,
	SliceTopBanners,
	SliceFooterBanners,
}

type state struct {
	session       user.User
	users         []user.User
	cart          []cart.Item
	favorites     []product.Product
	categories    []category.Category
	products      []product.Product
	topBanners    banner.Slots
	footerBanners banner.Slots
}

// initialState is what the store holds before hydration.
func initialState() state {
	return state{
		session:       user.Guest(),
		users:         user.Seed(),
		cart:          []cart.Item{},
		favorites:     []product.Product{},
		categories:    []category.Category{},
		products:      []product.Product{},
		topBanners:    banner.Slots{},
		footerBanners: banner.Slots{},
	}
}

// defaultState holds the fallback for every slice that is absent or unreadable.
func defaultState() state {
	return state{
		session:       user.Guest(),
		users:         user.Seed(),
		cart:          []cart.Item{},
		favorites:     []product.Product{},
		categories:    category.Seed(),
		products:      product.Seed(),
		topBanners:    banner.Default(),
		footerBanners: banner.Default(),
	}
}

func (st *state) encode(slice string) ([]byte, error) {
	switch slice {
	case SliceUser:
		return json.Marshal(st.session)
	case SliceUsers:
		return json.Marshal(nonNil(st.users))
	case SliceCart:
		return json.Marshal(nonNil(st.cart))
	case SliceFavorites:
		return json.Marshal(nonNil(st.favorites))
	case SliceCategories:
		return json.Marshal(nonNil(st.categories))
	case SliceProducts:
		return json.Marshal(nonNil(st.products))
	case SliceTopBanners:
		return json.Marshal(nonNil(st.topBanners))
	case SliceFooterBanners:
		return json.Marshal(nonNil(st.footerBanners))
	}
	return nil, fmt.Errorf("unknown slice %q", slice)
}

// decode replaces one slice with the persisted value. On error st is left untouched.
// A JSON null keeps the current value.
func (st *state) decode(slice string, raw []byte) error {
	switch slice {
	case SliceUser:
		var u *user.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return err
		}
		// a persisted guest is the same as no session at all
		if u != nil && u.ID != "" && !u.IsGuest() {
			st.session = *u
		}
	case SliceUsers:
		return decodeInto(raw, &st.users)
	case SliceCart:
		var items []cart.Item
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		if items != nil {
			st.cart = dropEmpty(items)
		}
	case SliceFavorites:
		return decodeInto(raw, &st.favorites)
	case SliceCategories:
		return decodeInto(raw, &st.categories)
	case SliceProducts:
		return decodeInto(raw, &st.products)
	case SliceTopBanners:
		return decodeBanner(raw, &st.topBanners)
	case SliceFooterBanners:
		return decodeBanner(raw, &st.footerBanners)
	default:
		return fmt.Errorf("unknown slice %q", slice)
	}
	return nil
}

func decodeInto[T any](raw []byte, dst *[]T) error {
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	if v != nil {
		*dst = v
	}
	return nil
}

func decodeBanner(raw []byte, dst *banner.Slots) error {
	var v banner.Slots
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	if v != nil {
		*dst = v.Normalize()
	}
	return nil
}

func dropEmpty(items []cart.Item) []cart.Item {
	out := make([]cart.Item, 0, len(items))
	for _, it := range items {
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}

func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
