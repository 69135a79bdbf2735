package store_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/auth"
	"github.com/frahmantamala/marketplace-storefront/internal/core/events"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
	"github.com/frahmantamala/marketplace-storefront/internal/store"
	"github.com/frahmantamala/marketplace-storefront/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ = Describe("Store", func() {
	var (
		ctx context.Context
		kv  *flakyKV
		s   *store.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		kv = newFlakyKV()
		s = hydrated(kv)
	})

	Describe("Login", func() {
		It("matches the email case-insensitively and becomes superadmin", func() {
			// When
			u, err := s.Login(ctx, "ROOT@MEGATEC.COM", "admin")

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(u.Role).To(Equal(user.RoleSuperAdmin))
			Expect(s.Session().Role).To(Equal(user.RoleSuperAdmin))
			Expect(persisted(kv, store.SliceUser)).To(ContainSubstring(`"superadmin-01"`))
			Expect(testutil.ToFloat64(s.Metrics().LoginAttempts.WithLabelValues("accepted"))).To(Equal(1.0))
		})

		It("fails for an unknown user and leaves the session alone", func() {
			// Given
			_, err := s.Login(ctx, "juan perez", "")
			Expect(err).ToNot(HaveOccurred())
			version := s.Snapshot().Version

			// When
			_, err = s.Login(ctx, "nope@x.com", "")

			// Then
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
			Expect(s.Session().ID).To(Equal("user-01"))
			Expect(s.Snapshot().Version).To(Equal(version))
			Expect(testutil.ToFloat64(s.Metrics().LoginAttempts.WithLabelValues("rejected"))).To(Equal(1.0))
		})

		It("rejects a wrong password", func() {
			_, err := s.Login(ctx, "root@megatec.com", "letmein")

			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
			Expect(s.Session().ID).To(Equal(user.GuestID))
		})
	})

	Describe("Logout", func() {
		It("clears the cart and drops every permission", func() {
			_, err := s.Login(ctx, "root@megatec.com", "admin")
			Expect(err).ToNot(HaveOccurred())
			Expect(s.AddToCart(ctx, testProduct("a", "10", nil))).To(Succeed())

			Expect(s.Logout(ctx)).To(Succeed())

			Expect(s.Snapshot().Cart).To(BeEmpty())
			Expect(s.Permissions()).To(Equal(user.Permissions{}))
			Expect(s.Session().ID).To(Equal(user.GuestID))
			Expect(persisted(kv, store.SliceCart)).To(MatchJSON(`[]`))
		})
	})

	Describe("UpdateUser", func() {
		It("mirrors the change into the session of the same user", func() {
			_, err := s.Login(ctx, "ana.garcia@megatec.com", "")
			Expect(err).ToNot(HaveOccurred())
			name := "Ana G."

			Expect(s.UpdateUser(ctx, "admin-01", user.Patch{Name: &name})).To(Succeed())

			Expect(s.Session().Name).To(Equal(name))
			Expect(s.Snapshot().Users[1].Name).To(Equal(name))
			Expect(persisted(kv, store.SliceUser)).To(ContainSubstring(name))
		})

		It("leaves the session alone when another user changes", func() {
			_, err := s.Login(ctx, "root@megatec.com", "")
			Expect(err).ToNot(HaveOccurred())
			phone := "+34 600 000 000"

			Expect(s.UpdateUser(ctx, "admin-02", user.Patch{Phone: &phone})).To(Succeed())

			Expect(s.Session().Phone).To(BeEmpty())
			Expect(s.Snapshot().Users[2].Phone).To(Equal(phone))
		})

		It("ignores an unknown id", func() {
			version := s.Snapshot().Version
			name := "x"

			Expect(s.UpdateUser(ctx, "missing", user.Patch{Name: &name})).To(Succeed())
			Expect(s.Snapshot().Version).To(Equal(version))
		})

		It("rejects an unknown role", func() {
			role := user.Role("owner")
			err := s.UpdateUser(ctx, "admin-01", user.Patch{Role: &role})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("AddUser", func() {
		It("defaults to an admin without permissions", func() {
			u, err := s.AddUser(ctx, user.NewUser{Name: "Nuevo", Email: "nuevo@megatec.com", Password: "pw"})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.ID).To(Equal("6"))
			Expect(u.Role).To(Equal(user.RoleAdmin))
			Expect(u.Permissions).To(Equal(user.Permissions{}))
			Expect(s.Snapshot().Users).To(HaveLen(6))
		})

		It("skips ids that are already taken", func() {
			_, err := s.AddUser(ctx, user.NewUser{Name: "Uno", Email: "uno@megatec.com"})
			Expect(err).ToNot(HaveOccurred())
			Expect(s.DeleteUser(ctx, "user-01")).To(Succeed())

			u, err := s.AddUser(ctx, user.NewUser{Name: "Dos", Email: "dos@megatec.com"})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.ID).To(Equal("7"))
		})

		It("hashes the password when configured to", func() {
			s = hydrated(newFlakyKV(), store.WithSecurity(internal.SecurityConfig{BCryptCost: 4, HashNewPasswords: true}))

			u, err := s.AddUser(ctx, user.NewUser{Name: "Segura", Email: "segura@megatec.com", Password: "s3cret"})
			Expect(err).ToNot(HaveOccurred())
			Expect(auth.IsHashed(u.Password)).To(BeTrue())

			_, err = s.Login(ctx, "segura@megatec.com", "s3cret")
			Expect(err).ToNot(HaveOccurred())
		})

		It("rejects an invalid email", func() {
			_, err := s.AddUser(ctx, user.NewUser{Name: "Mal", Email: "mal"})

			Expect(err).To(HaveOccurred())
			Expect(s.Snapshot().Users).To(HaveLen(5))
		})
	})

	Describe("DeleteUser", func() {
		It("keeps the operator name on that user's products", func() {
			Expect(s.DeleteUser(ctx, "admin-01")).To(Succeed())

			snap := s.Snapshot()
			Expect(user.FindByID(snap.Users, "admin-01")).To(Equal(-1))
			Expect(product.CountByOperator(snap.Products)["Ana García"]).To(Equal(4))
		})
	})

	Describe("AddProduct", func() {
		It("prepends with a fresh id and the session as operator", func() {
			_, err := s.Login(ctx, "carlos.ruiz@megatec.com", "")
			Expect(err).ToNot(HaveOccurred())

			first, err := s.AddProduct(ctx, newProduct())
			Expect(err).ToNot(HaveOccurred())
			second, err := s.AddProduct(ctx, newProduct())
			Expect(err).ToNot(HaveOccurred())

			Expect(first.Operator).To(Equal("Carlos Ruiz"))
			Expect(second.ID).ToNot(Equal(first.ID))
			Expect(second.ID > first.ID).To(BeTrue())

			products := s.Snapshot().Products
			Expect(products).To(HaveLen(14))
			Expect(products[0].ID).To(Equal(second.ID))
			Expect(products[1].ID).To(Equal(first.ID))
		})

		It("rejects a discount above the price", func() {
			np := newProduct()
			np.DiscountPrice = decPtr("41")

			_, err := s.AddProduct(ctx, np)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(s.Snapshot().Products).To(HaveLen(12))
		})

		It("rejects a negative price", func() {
			np := newProduct()
			np.Price = dec("-1")

			_, err := s.AddProduct(ctx, np)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateProduct", func() {
		It("replaces the product and refreshes cart and favorites", func() {
			p := s.Snapshot().Products[1]
			Expect(s.AddToCart(ctx, p)).To(Succeed())
			_, err := s.ToggleFavorite(ctx, p)
			Expect(err).ToNot(HaveOccurred())

			p.Price = dec("1000")
			Expect(s.UpdateProduct(ctx, p)).To(Succeed())

			snap := s.Snapshot()
			Expect(snap.Products[1].Price.Equal(dec("1000"))).To(BeTrue())
			Expect(snap.Cart[0].Price.Equal(dec("1000"))).To(BeTrue())
			Expect(snap.Favorites[0].Price.Equal(dec("1000"))).To(BeTrue())
		})

		It("ignores an unknown id", func() {
			version := s.Snapshot().Version

			Expect(s.UpdateProduct(ctx, testProduct("nope", "1", nil))).To(Succeed())
			Expect(s.Snapshot().Version).To(Equal(version))
		})

		It("rejects an invalid replacement", func() {
			p := s.Snapshot().Products[0]
			p.Images = nil

			Expect(s.UpdateProduct(ctx, p)).ToNot(Succeed())
			Expect(s.Snapshot().Products[0].Images).To(HaveLen(5))
		})
	})

	Describe("DeleteProduct", func() {
		It("prunes the product from cart and favorites", func() {
			p := s.Snapshot().Products[0]
			Expect(s.AddToCart(ctx, p)).To(Succeed())
			_, err := s.ToggleFavorite(ctx, p)
			Expect(err).ToNot(HaveOccurred())

			Expect(s.DeleteProduct(ctx, p.ID)).To(Succeed())

			snap := s.Snapshot()
			Expect(product.FindByID(snap.Products, p.ID)).To(Equal(-1))
			Expect(snap.Cart).To(BeEmpty())
			Expect(snap.Favorites).To(BeEmpty())
			Expect(s.IsFavorite(p.ID)).To(BeFalse())
		})

		It("ignores an unknown id", func() {
			Expect(s.DeleteProduct(ctx, "nope")).To(Succeed())
			Expect(s.Snapshot().Products).To(HaveLen(12))
		})
	})

	Describe("AddCategory", func() {
		It("appends with the next id", func() {
			c, err := s.AddCategory(ctx, "Juguetes")

			Expect(err).ToNot(HaveOccurred())
			Expect(c.ID).To(Equal("10"))
			Expect(persisted(kv, store.SliceCategories)).To(ContainSubstring("Juguetes"))
		})

		It("rejects a duplicate name", func() {
			_, err := s.AddCategory(ctx, " ropa ")

			Expect(errors.Is(err, internal.ErrDuplicateCategory)).To(BeTrue())
			Expect(s.Snapshot().Categories).To(HaveLen(9))
		})
	})

	Describe("cart", func() {
		It("totals discount-or-price times quantity", func() {
			ten := testProduct("a", "10", nil)
			twenty := testProduct("b", "20", decPtr("15"))

			Expect(s.AddToCart(ctx, ten)).To(Succeed())
			Expect(s.AddToCart(ctx, ten)).To(Succeed())
			Expect(s.AddToCart(ctx, twenty)).To(Succeed())

			Expect(s.CartTotal().Equal(dec("35"))).To(BeTrue())
			Expect(s.Snapshot().CartTotal.Equal(dec("35"))).To(BeTrue())
		})

		It("adds quantity instead of a second line", func() {
			p := testProduct("a", "10", nil)

			Expect(s.AddToCart(ctx, p)).To(Succeed())
			Expect(s.AddToCart(ctx, p)).To(Succeed())

			items := s.Snapshot().Cart
			Expect(items).To(HaveLen(1))
			Expect(items[0].Quantity).To(Equal(2))
		})

		It("sets the quantity exactly", func() {
			Expect(s.AddToCart(ctx, testProduct("a", "10", nil))).To(Succeed())

			Expect(s.UpdateCartItemQuantity(ctx, "a", 4)).To(Succeed())

			Expect(s.Snapshot().Cart[0].Quantity).To(Equal(4))
		})

		DescribeTable("removes the line for a non-positive quantity",
			func(quantity int) {
				Expect(s.AddToCart(ctx, testProduct("a", "10", nil))).To(Succeed())

				Expect(s.UpdateCartItemQuantity(ctx, "a", quantity)).To(Succeed())

				Expect(s.Snapshot().Cart).To(BeEmpty())
			},
			Entry("zero", 0),
			Entry("negative", -5),
		)

		It("removes and clears", func() {
			Expect(s.AddToCart(ctx, testProduct("a", "10", nil))).To(Succeed())
			Expect(s.AddToCart(ctx, testProduct("b", "10", nil))).To(Succeed())

			Expect(s.RemoveFromCart(ctx, "a")).To(Succeed())
			Expect(s.RemoveFromCart(ctx, "missing")).To(Succeed())
			Expect(s.Snapshot().Cart).To(HaveLen(1))

			Expect(s.ClearCart(ctx)).To(Succeed())
			Expect(s.Snapshot().Cart).To(BeEmpty())
			Expect(s.CartTotal().IsZero()).To(BeTrue())
		})
	})

	Describe("favorites", func() {
		It("toggling twice restores the original set", func() {
			existing := testProduct("keep", "1", nil)
			_, err := s.ToggleFavorite(ctx, existing)
			Expect(err).ToNot(HaveOccurred())
			before := toJSON(s.Snapshot().Favorites)

			p := testProduct("x", "1", nil)
			now, err := s.ToggleFavorite(ctx, p)
			Expect(err).ToNot(HaveOccurred())
			Expect(now).To(BeTrue())
			Expect(s.IsFavorite("x")).To(BeTrue())

			now, err = s.ToggleFavorite(ctx, p)
			Expect(err).ToNot(HaveOccurred())
			Expect(now).To(BeFalse())

			Expect(toJSON(s.Snapshot().Favorites)).To(MatchJSON(before))
		})
	})

	Describe("banners", func() {
		It("replaces and clears a slot", func() {
			img := "https://cdn.example.com/promo.png"

			Expect(s.UpdateTopBanner(ctx, 0, &img)).To(Succeed())
			Expect(s.UpdateFooterBanner(ctx, 1, nil)).To(Succeed())

			snap := s.Snapshot()
			Expect(*snap.TopBanners[0]).To(Equal(img))
			Expect(snap.FooterBanners[1]).To(BeNil())
			Expect(persisted(kv, store.SliceFooterBanners)).To(MatchJSON(`["https://placehold.co/1200x400.png",null,"https://placehold.co/1200x400.png"]`))
		})

		It("ignores an index outside the strip", func() {
			img := "x.png"
			version := s.Snapshot().Version

			Expect(s.UpdateTopBanner(ctx, 3, &img)).To(Succeed())
			Expect(s.UpdateTopBanner(ctx, -1, &img)).To(Succeed())

			Expect(s.Snapshot().Version).To(Equal(version))
		})

		It("logs the rejected index with the caller's session", func() {
			var buf bytes.Buffer
			s = hydrated(kv, store.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
			img := "x.png"

			Expect(s.UpdateTopBanner(internal.ContextWithSessionID(ctx, "admin-01"), 7, &img)).To(Succeed())

			Expect(buf.String()).To(ContainSubstring("banner index out of range"))
			Expect(buf.String()).To(ContainSubstring("session_user_id=admin-01"))
		})
	})

	Describe("subscriptions", func() {
		It("notifies listeners with the changed slices", func() {
			var got []*events.SliceChanged
			unsubscribe := s.Subscribe(func(_ context.Context, change *events.SliceChanged) error {
				// listeners may read the store
				Expect(s.Snapshot().Version).To(Equal(change.Version))
				got = append(got, change)
				return nil
			})

			Expect(s.Logout(ctx)).To(Succeed())
			unsubscribe()
			Expect(s.ClearCart(ctx)).To(Succeed())

			Expect(got).To(HaveLen(1))
			Expect(got[0].Slices).To(ConsistOf(store.SliceUser, store.SliceCart))
		})

		It("does not fail the mutation when a listener errors", func() {
			s.Subscribe(func(context.Context, *events.SliceChanged) error {
				return errors.New("listener broke")
			})

			Expect(s.AddToCart(ctx, testProduct("a", "1", nil))).To(Succeed())
		})
	})

	Describe("persistence failures", func() {
		It("returns an internal error but keeps the change in memory", func() {
			kv.failSet = true

			err := s.AddToCart(ctx, testProduct("a", "10", nil))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeStorage))
			Expect(s.Snapshot().Cart).To(HaveLen(1))
			Expect(testutil.ToFloat64(s.Metrics().PersistErrors.WithLabelValues(store.SliceCart))).To(Equal(1.0))
		})
	})

	Describe("Snapshot", func() {
		It("cannot be used to change the store", func() {
			snap := s.Snapshot()
			snap.Products[0].Name = "hacked"
			snap.Products[0].Images[0] = "hacked.png"
			*snap.TopBanners[0] = "hacked.png"

			fresh := s.Snapshot()
			Expect(fresh.Products[0].Name).To(Equal("Smartphone X-Pro"))
			Expect(fresh.Products[0].Images[0]).ToNot(Equal("hacked.png"))
			Expect(*fresh.TopBanners[0]).ToNot(Equal("hacked.png"))
		})
	})

	Describe("round trip", func() {
		It("restores every slice in a fresh store on the same backend", func() {
			// Given
			_, err := s.Login(ctx, "root@megatec.com", "admin")
			Expect(err).ToNot(HaveOccurred())
			_, err = s.AddProduct(ctx, newProduct())
			Expect(err).ToNot(HaveOccurred())
			_, err = s.AddCategory(ctx, "Juguetes")
			Expect(err).ToNot(HaveOccurred())
			_, err = s.AddUser(ctx, user.NewUser{Name: "Nuevo", Email: "nuevo@megatec.com"})
			Expect(err).ToNot(HaveOccurred())
			p := s.Snapshot().Products[3]
			Expect(s.AddToCart(ctx, p)).To(Succeed())
			Expect(s.UpdateCartItemQuantity(ctx, p.ID, 3)).To(Succeed())
			_, err = s.ToggleFavorite(ctx, p)
			Expect(err).ToNot(HaveOccurred())
			Expect(s.UpdateTopBanner(ctx, 2, nil)).To(Succeed())
			before := s.Snapshot()

			// When
			after := hydrated(kv).Snapshot()

			// Then
			Expect(toJSON(after.Session)).To(MatchJSON(toJSON(before.Session)))
			Expect(toJSON(after.Users)).To(MatchJSON(toJSON(before.Users)))
			Expect(toJSON(after.Cart)).To(MatchJSON(toJSON(before.Cart)))
			Expect(toJSON(after.Favorites)).To(MatchJSON(toJSON(before.Favorites)))
			Expect(toJSON(after.Categories)).To(MatchJSON(toJSON(before.Categories)))
			Expect(toJSON(after.Products)).To(MatchJSON(toJSON(before.Products)))
			Expect(toJSON(after.TopBanners)).To(MatchJSON(toJSON(before.TopBanners)))
			Expect(toJSON(after.FooterBanners)).To(MatchJSON(toJSON(before.FooterBanners)))
			Expect(after.CartTotal.Equal(before.CartTotal)).To(BeTrue())
		})

		It("reloads a discounted product unchanged", func() {
			data := newProduct()
			data.Price = dec("40.00")
			discount, err := product.DiscountFromPercentage(data.Price, dec("15"))
			Expect(err).ToNot(HaveOccurred())
			data.DiscountPrice = discount
			created, err := s.AddProduct(ctx, data)
			Expect(err).ToNot(HaveOccurred())
			Expect(s.AddToCart(ctx, created)).To(Succeed())

			after := hydrated(kv).Snapshot()

			Expect(after.Products[0]).To(Equal(created))
			Expect(after.Cart[0].Product).To(Equal(created))
		})

		It("serializes cart items flat", func() {
			Expect(s.AddToCart(ctx, testProduct("a", "10", nil))).To(Succeed())

			raw := persisted(kv, store.SliceCart)
			Expect(raw).To(ContainSubstring(`"quantity":1`))
			Expect(raw).To(ContainSubstring(`"price":10`))
			Expect(raw).ToNot(ContainSubstring(`"Product"`))
		})
	})
})
