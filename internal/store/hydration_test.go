package store_test

import (
	"context"
	"errors"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/banner"
	"github.com/frahmantamala/marketplace-storefront/internal/core/events"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
	"github.com/frahmantamala/marketplace-storefront/internal/storage"
	"github.com/frahmantamala/marketplace-storefront/internal/store"
	"github.com/frahmantamala/marketplace-storefront/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ = Describe("Hydration", func() {
	var (
		ctx context.Context
		kv  *flakyKV
	)

	BeforeEach(func() {
		ctx = context.Background()
		kv = newFlakyKV()
	})

	Context("before hydration", func() {
		It("exposes the guest with empty cart and favorites", func() {
			s := newStore(kv)

			snap := s.Snapshot()
			Expect(s.Ready()).To(BeFalse())
			Expect(snap.Ready).To(BeFalse())
			Expect(snap.Session.ID).To(Equal(user.GuestID))
			Expect(snap.Cart).To(BeEmpty())
			Expect(snap.Favorites).To(BeEmpty())
			Expect(snap.Products).To(BeEmpty())
			Expect(snap.Users).To(HaveLen(len(user.Seed())))
			Expect(s.Permissions()).To(Equal(user.Permissions{}))
		})

		It("refuses to log in", func() {
			s := newStore(kv)

			u, err := s.Login(ctx, "root@megatec.com", "admin")

			Expect(errors.Is(err, internal.ErrStoreNotReady)).To(BeTrue())
			Expect(u.ID).To(BeEmpty())
			Expect(s.Session().ID).To(Equal(user.GuestID))
			Expect(testutil.ToFloat64(s.Metrics().LoginAttempts.WithLabelValues("rejected"))).To(Equal(0.0))
		})

		It("keeps mutations in memory only", func() {
			s := newStore(kv)

			Expect(s.AddToCart(ctx, testProduct("a", "10", nil))).To(Succeed())
			Expect(s.Snapshot().Cart).To(HaveLen(1))

			_, err := kv.Get(ctx, store.SliceCart)
			Expect(errors.Is(err, storage.ErrNotFound)).To(BeTrue())
		})
	})

	Context("with nothing persisted", func() {
		It("falls back to the fixtures and writes every slice back", func() {
			s := hydrated(kv)

			snap := s.Snapshot()
			Expect(snap.Ready).To(BeTrue())
			Expect(snap.Session.ID).To(Equal(user.GuestID))
			Expect(snap.Products).To(HaveLen(12))
			Expect(snap.Categories).To(HaveLen(9))
			Expect(snap.TopBanners).To(HaveLen(banner.SlotCount))
			Expect(*snap.FooterBanners[2]).To(Equal(banner.DefaultImage))

			for _, slice := range store.Slices {
				_, err := kv.Get(ctx, slice)
				Expect(err).ToNot(HaveOccurred(), "slice %s", slice)
			}
			Expect(persisted(kv, store.SliceCart)).To(MatchJSON(`[]`))
		})

		It("is a no-op the second time", func() {
			s := hydrated(kv)
			version := s.Snapshot().Version

			Expect(s.Hydrate(ctx)).To(Succeed())
			Expect(s.Snapshot().Version).To(Equal(version))
		})
	})

	Context("with persisted slices", func() {
		It("prefers persisted state over the fixtures", func() {
			Expect(kv.Set(ctx, store.SliceCategories, []byte(`[{"id":"1","name":"Solo"}]`))).To(Succeed())
			Expect(kv.Set(ctx, store.SliceCart, []byte(`[{"id":"1","name":"Smartphone X-Pro","description":"d","price":10,"images":["x"],"category":"Electrónica","quantity":3}]`))).To(Succeed())

			s := hydrated(kv)

			snap := s.Snapshot()
			Expect(snap.Categories).To(HaveLen(1))
			Expect(snap.Cart).To(HaveLen(1))
			Expect(snap.Cart[0].Quantity).To(Equal(3))
			Expect(snap.CartTotal.Equal(dec("30"))).To(BeTrue())
		})

		It("restores a signed-in session", func() {
			root := user.Seed()[0]
			Expect(kv.Set(ctx, store.SliceUser, []byte(toJSON(root)))).To(Succeed())

			s := hydrated(kv)

			Expect(s.Session().ID).To(Equal(root.ID))
			Expect(s.Permissions()).To(Equal(user.AllPermissions()))
		})

		It("ignores a persisted guest", func() {
			Expect(kv.Set(ctx, store.SliceUser, []byte(`{"id":"guest","name":"Guest","email":"","role":"guest","permissions":{"canManagePublications":true}}`))).To(Succeed())

			s := hydrated(kv)

			Expect(s.Session().ID).To(Equal(user.GuestID))
			Expect(s.Permissions()).To(Equal(user.Permissions{}))
		})

		It("gives users without permissions the all-false set", func() {
			Expect(kv.Set(ctx, store.SliceUsers, []byte(`[{"id":"1","name":"Sin Permisos","email":"sp@megatec.com","role":"admin"}]`))).To(Succeed())

			s := hydrated(kv)

			Expect(s.Snapshot().Users[0].Permissions).To(Equal(user.Permissions{}))
		})

		It("pads short banner strips to three slots", func() {
			Expect(kv.Set(ctx, store.SliceTopBanners, []byte(`["a.png"]`))).To(Succeed())

			s := hydrated(kv)

			top := s.Snapshot().TopBanners
			Expect(top).To(HaveLen(banner.SlotCount))
			Expect(*top[0]).To(Equal("a.png"))
			Expect(top[1]).To(BeNil())
		})

		It("issues product ids above the persisted ones", func() {
			far := fixedNow.UnixMilli() + 1000
			p := testProduct("", "10", nil)
			p.ID = toJSON(far)
			Expect(kv.Set(ctx, store.SliceProducts, []byte(toJSON([]product.Product{p})))).To(Succeed())

			s := hydrated(kv)
			created, err := s.AddProduct(ctx, newProduct())

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).To(Equal(toJSON(far + 1)))
		})
	})

	Context("when a slice is corrupt", func() {
		BeforeEach(func() {
			Expect(kv.Set(ctx, store.SliceCart, []byte(`{not json`))).To(Succeed())
			Expect(kv.Set(ctx, store.SliceFavorites, []byte(toJSON([]product.Product{testProduct("f1", "5", nil)})))).To(Succeed())
			Expect(kv.Set(ctx, store.SliceUser, []byte(toJSON(user.Seed()[4])))).To(Succeed())
		})

		It("isolates the failure to that slice by default", func() {
			s := hydrated(kv)

			snap := s.Snapshot()
			Expect(snap.Cart).To(BeEmpty())
			Expect(snap.Favorites).To(HaveLen(1))
			Expect(snap.Session.ID).To(Equal("user-01"))
			Expect(persisted(kv, store.SliceCart)).To(MatchJSON(`[]`))
			Expect(testutil.ToFloat64(s.Metrics().HydrationFallbacks.WithLabelValues(store.SliceCart))).To(Equal(1.0))
		})

		It("resets every slice under the reset policy", func() {
			s := hydrated(kv, store.WithHydrationPolicy(internal.HydrationPolicyReset))

			snap := s.Snapshot()
			Expect(snap.Cart).To(BeEmpty())
			Expect(snap.Favorites).To(BeEmpty())
			Expect(snap.Session.ID).To(Equal(user.GuestID))
			Expect(snap.Products).To(HaveLen(12))
			Expect(persisted(kv, store.SliceFavorites)).To(MatchJSON(`[]`))
		})

		It("leaves keys it does not own under the reset policy", func() {
			Expect(kv.Set(ctx, "checkout-draft", []byte(`{"step":2}`))).To(Succeed())

			hydrated(kv, store.WithHydrationPolicy(internal.HydrationPolicyReset))

			Expect(persisted(kv, "checkout-draft")).To(MatchJSON(`{"step":2}`))
		})

		It("reports the fallbacks to hydration listeners", func() {
			s := newStore(kv)
			var got []string
			s.OnHydrated(func(_ context.Context, h *events.Hydrated) error {
				got = h.Fallbacks
				return nil
			})

			Expect(s.Hydrate(ctx)).To(Succeed())
			Expect(got).To(Equal([]string{store.SliceCart}))
		})
	})

	Context("when the backend cannot be read", func() {
		It("returns an internal error and stays unhydrated", func() {
			kv.failGet = true
			s := newStore(kv)

			err := s.Hydrate(ctx)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			Expect(errors.Is(err, errBackend)).To(BeTrue())
			Expect(s.Ready()).To(BeFalse())
		})
	})
})
