package category_test

import (
	"errors"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category", func() {
	var categories []category.Category

	BeforeEach(func() {
		categories = category.Seed()
	})

	Describe("Append", func() {
		It("should add the category at the end with the next id", func() {
			out, created, err := category.Append(categories, "Juguetes")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HaveLen(10))
			Expect(created).To(Equal(category.Category{ID: "10", Name: "Juguetes"}))
			Expect(out[9]).To(Equal(created))
		})

		It("should not modify the input slice", func() {
			_, _, err := category.Append(categories, "Juguetes")

			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(9))
		})

		It("should skip ids that are already taken", func() {
			categories = []category.Category{{ID: "2", Name: "Ropa"}}

			_, created, err := category.Append(categories, "Arte")

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal("3"))
		})

		It("should reject a duplicate name regardless of case", func() {
			_, _, err := category.Append(categories, "  ropa ")

			Expect(errors.Is(err, internal.ErrDuplicateCategory)).To(BeTrue())
		})

		It("should reject an empty name", func() {
			_, _, err := category.Append(categories, " ")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("FindByName", func() {
		It("should resolve an exact name", func() {
			c, ok := category.FindByName(categories, "Vehículos")

			Expect(ok).To(BeTrue())
			Expect(c.ID).To(Equal("8"))
		})

		It("should not resolve a different case", func() {
			_, ok := category.FindByName(categories, "vehículos")

			Expect(ok).To(BeFalse())
		})
	})
})
