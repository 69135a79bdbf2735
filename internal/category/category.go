package category

import (
	"strconv"
	"strings"

	"github.com/frahmantamala/marketplace-storefront/internal"
)

// Category names are display strings; products reference them by name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Seed returns the default category list.
func Seed() []Category {
	names := []string{
		"Electrónica", "Ropa", "Hogar", "Librería", "Deportes",
		"Arte", "Antigüedades", "Vehículos", "Donaciones",
	}
	out := make([]Category, len(names))
	for i, n := range names {
		out[i] = Category{ID: strconv.Itoa(i + 1), Name: n}
	}
	return out
}

// FindByName matches exactly, the way category pages resolve their slug.
func FindByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Exists reports whether a category with the same name, ignoring case and
// surrounding space, is already present.
func Exists(categories []Category, name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, c := range categories {
		if strings.ToLower(strings.TrimSpace(c.Name)) == n {
			return true
		}
	}
	return false
}

// Append returns a new slice with a category named name added at the end.
// Ids are count+1, bumped past any id already taken.
func Append(categories []Category, name string) ([]Category, Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return categories, Category{}, internal.NewValidationFieldError("name", "category name is required", internal.ErrCodeInvalidName)
	}
	if Exists(categories, name) {
		return categories, Category{}, internal.ErrDuplicateCategory.WithDetails(map[string]string{"name": name})
	}

	taken := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		taken[c.ID] = struct{}{}
	}
	n := len(categories) + 1
	for {
		if _, ok := taken[strconv.Itoa(n)]; !ok {
			break
		}
		n++
	}

	created := Category{ID: strconv.Itoa(n), Name: name}
	out := make([]Category, 0, len(categories)+1)
	out = append(out, categories...)
	out = append(out, created)
	return out, created, nil
}
