package product

import (
	"strings"
	"unicode/utf8"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/shopspring/decimal"
)

func init() {
	// Persisted slices carry prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	}
	return false
}

const (
	MinImages         = 1
	MaxImages         = 5
	MinNameLength     = 3
	MaxNameLength     = 100
	MaxDescriptionLen = 5000

	// DefaultOperator is shown for publications that carry no operator.
	DefaultOperator = "Sistema"
)

type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	Images        []string         `json:"images"`
	Category      string           `json:"category"`
	Operator      string           `json:"operator,omitempty"`
	Condition     Condition        `json:"condition,omitempty"`
}

// EffectivePrice is the discount price when set, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p Product) HasDiscount() bool {
	return p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price)
}

func (p Product) OperatorName() string {
	if p.Operator == "" {
		return DefaultOperator
	}
	return p.Operator
}

// Clone copies the slice and pointer fields so callers cannot reach shared state.
// Prices come back in canonical form, the same shape a JSON reload produces.
func (p Product) Clone() Product {
	cp := p
	cp.Price = Canonical(p.Price)
	if p.Images != nil {
		cp.Images = append([]string(nil), p.Images...)
	}
	if p.DiscountPrice != nil {
		d := Canonical(*p.DiscountPrice)
		cp.DiscountPrice = &d
	}
	return cp
}

// Canonical drops trailing zeros from d, so 3400e-2 becomes 34. Values that are
// Equal end up with the same coefficient and exponent.
func Canonical(d decimal.Decimal) decimal.Decimal {
	return decimal.RequireFromString(d.String())
}

// Validate rejects publications the editor would not accept. A discount
// above the list price is an error, never clipped.
func (p Product) Validate() error {
	var errs internal.ValidationErrors

	nameLen := utf8.RuneCountInString(strings.TrimSpace(p.Name))
	if nameLen < MinNameLength || nameLen > MaxNameLength {
		errs.Add("name", "name must be between 3 and 100 characters", internal.ErrCodeInvalidName)
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLen {
		errs.Add("description", "description cannot exceed 5000 characters", internal.ErrCodeValidationFailed)
	}
	if p.Price.IsNegative() {
		errs.Add("price", "price cannot be negative", internal.ErrCodeInvalidPrice)
	}
	if p.DiscountPrice != nil {
		if p.DiscountPrice.IsNegative() {
			errs.Add("discountPrice", "discount price cannot be negative", internal.ErrCodeInvalidDiscount)
		} else if p.DiscountPrice.GreaterThan(p.Price) {
			errs.Add("discountPrice", "discount price cannot exceed price", internal.ErrCodeInvalidDiscount)
		}
	}
	if len(p.Images) < MinImages || len(p.Images) > MaxImages {
		errs.Add("images", "a publication needs between 1 and 5 images", internal.ErrCodeInvalidImages)
	}
	for _, img := range p.Images {
		if strings.TrimSpace(img) == "" {
			errs.Add("images", "image references cannot be empty", internal.ErrCodeInvalidImages)
			break
		}
	}
	if strings.TrimSpace(p.Category) == "" {
		errs.Add("category", "category is required", internal.ErrCodeInvalidCategory)
	}
	if p.Condition != "" && !p.Condition.Valid() {
		errs.Add("condition", "condition must be new, used or refurbished", internal.ErrCodeInvalidCondition)
	}

	return errs.Err()
}

// FindByID returns the index of the product with id, or -1.
func FindByID(products []Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
