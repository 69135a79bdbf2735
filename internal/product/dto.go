package product

import (
	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/shopspring/decimal"
)

// NewProduct is a publication before the store assigns id and operator.
type NewProduct struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	Images        []string         `json:"images"`
	Category      string           `json:"category"`
	Condition     Condition        `json:"condition,omitempty"`
}

func (n NewProduct) ToProduct(id, operator string) Product {
	p := Product{
		ID:            id,
		Name:          n.Name,
		Description:   n.Description,
		Price:         n.Price,
		DiscountPrice: n.DiscountPrice,
		Images:        n.Images,
		Category:      n.Category,
		Operator:      operator,
		Condition:     n.Condition,
	}
	return p.Clone()
}

var hundred = decimal.NewFromInt(100)

// DiscountFromPercentage converts the editor's 0-100 % discount into a
// discount price. Zero percent means no discount.
func DiscountFromPercentage(price, percentage decimal.Decimal) (*decimal.Decimal, error) {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return nil, internal.NewValidationFieldError("discountPercentage", "discount must be between 0 and 100", internal.ErrCodeInvalidDiscount)
	}
	if percentage.IsZero() {
		return nil, nil
	}
	factor := decimal.NewFromInt(1).Sub(percentage.Div(hundred))
	d := Canonical(price.Mul(factor).Round(2))
	return &d, nil
}

// PercentageFromDiscount is the inverse shown when a publication is edited,
// rounded to a whole percent.
func PercentageFromDiscount(p Product) decimal.Decimal {
	if p.DiscountPrice == nil || p.Price.IsZero() {
		return decimal.Zero
	}
	return p.Price.Sub(*p.DiscountPrice).Div(p.Price).Mul(hundred).Round(0)
}
