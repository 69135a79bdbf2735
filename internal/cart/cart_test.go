package cart_test

import (
	"encoding/json"

	"github.com/frahmantamala/marketplace-storefront/internal/cart"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func item(id, price string, discount string) product.Product {
	p := product.Product{
		ID:       id,
		Name:     "item " + id,
		Price:    decimal.RequireFromString(price),
		Images:   []string{"img"},
		Category: "Hogar",
	}
	if discount != "" {
		d := decimal.RequireFromString(discount)
		p.DiscountPrice = &d
	}
	return p
}

var _ = Describe("Cart", func() {
	var (
		ten     product.Product
		twenty  product.Product
		items   []cart.Item
		expectT = func(items []cart.Item, want string) {
			Expect(cart.Total(items).Equal(decimal.RequireFromString(want))).To(BeTrue(),
				"total %s, want %s", cart.Total(items), want)
		}
	)

	BeforeEach(func() {
		ten = item("a", "10", "")
		twenty = item("b", "20", "15")
		items = nil
	})

	It("should total discount-or-list price times quantity", func() {
		items = cart.Add(items, ten)
		items = cart.Add(items, ten)
		items = cart.Add(items, twenty)

		expectT(items, "35")
		Expect(cart.Count(items)).To(Equal(3))
	})

	It("should keep one line per product when added twice", func() {
		items = cart.Add(items, ten)
		items = cart.Add(items, ten)

		Expect(items).To(HaveLen(1))
		Expect(items[0].Quantity).To(Equal(2))
	})

	It("should set quantities exactly", func() {
		items = cart.Add(items, ten)
		items = cart.SetQuantity(items, "a", 7)

		Expect(items[0].Quantity).To(Equal(7))
		expectT(items, "70")
	})

	DescribeTable("should remove the line for non-positive quantities",
		func(qty int) {
			items = cart.Add(items, ten)
			items = cart.Add(items, twenty)

			items = cart.SetQuantity(items, "a", qty)

			Expect(cart.Contains(items, "a")).To(BeFalse())
			Expect(items).To(HaveLen(1))
		},
		Entry("zero", 0),
		Entry("negative", -5),
	)

	It("should ignore unknown ids", func() {
		items = cart.Add(items, ten)

		Expect(cart.SetQuantity(items, "zzz", 3)).To(Equal(items))
		Expect(cart.Remove(items, "zzz")).To(Equal(items))
	})

	It("should not mutate the input slice", func() {
		items = cart.Add(items, ten)
		before := items[0].Quantity

		_ = cart.Add(items, ten)
		_ = cart.SetQuantity(items, "a", 9)

		Expect(items[0].Quantity).To(Equal(before))
	})

	It("should refresh a product snapshot and keep the quantity", func() {
		items = cart.Add(items, ten)
		items = cart.SetQuantity(items, "a", 3)

		updated := item("a", "12", "")
		items = cart.Refresh(items, updated)

		Expect(items[0].Quantity).To(Equal(3))
		expectT(items, "36")
	})

	It("should total an empty cart to zero", func() {
		expectT(nil, "0")
	})

	It("should serialize items flat", func() {
		items = cart.Add(items, twenty)

		b, err := json.Marshal(items)
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(MatchJSON(`[{"id":"b","name":"item b","description":"","price":20,"discountPrice":15,"images":["img"],"category":"Hogar","quantity":1}]`))

		var back []cart.Item
		Expect(json.Unmarshal(b, &back)).To(Succeed())
		Expect(back[0].Quantity).To(Equal(1))
		expectT(back, "15")
	})
})
