// Package store is the storefront's single state container. It owns the session,
// catalog, cart, favorites and banners, mirrors each slice to a key-value backend
// and hands out deep-copied snapshots.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/auth"
	"github.com/frahmantamala/marketplace-storefront/internal/chat"
	"github.com/frahmantamala/marketplace-storefront/internal/core/events"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
	"github.com/frahmantamala/marketplace-storefront/internal/storage"
	"github.com/frahmantamala/marketplace-storefront/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

type Store struct {
	mu sync.RWMutex

	kv      storage.KV
	bus     *events.EventBus
	logger  *slog.Logger
	metrics *Metrics
	auth    *auth.Service
	chats   *chat.Service
	ids     *product.IDSource
	now     func() time.Time

	policy           string
	hashNewPasswords bool

	ready   bool
	version uint64
	state   state
}

type Option func(*options)

type options struct {
	logger           *slog.Logger
	bus              *events.EventBus
	registerer       prometheus.Registerer
	policy           string
	now              func() time.Time
	bcryptCost       int
	hashNewPasswords bool
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithEventBus(bus *events.EventBus) Option {
	return func(o *options) { o.bus = bus }
}

// WithRegisterer registers the store metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithHydrationPolicy selects internal.HydrationPolicyIsolate or internal.HydrationPolicyReset.
func WithHydrationPolicy(policy string) Option {
	return func(o *options) { o.policy = policy }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSecurity applies the password settings from config.
func WithSecurity(cfg internal.SecurityConfig) Option {
	return func(o *options) {
		o.bcryptCost = cfg.BCryptCost
		o.hashNewPasswords = cfg.HashNewPasswords
	}
}

// New returns an unhydrated store backed by kv. Call Hydrate before use.
func New(kv storage.KV, opts ...Option) *Store {
	o := options{
		policy: internal.HydrationPolicyIsolate,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.LoggerWrapper()
	}
	if o.bus == nil {
		o.bus = events.NewEventBus(o.logger)
	}
	if o.policy == "" {
		o.policy = internal.HydrationPolicyIsolate
	}

	return &Store{
		kv:               kv,
		bus:              o.bus,
		logger:           o.logger,
		metrics:          NewMetrics(o.registerer),
		auth:             auth.NewService(o.logger, o.bcryptCost),
		chats:            chat.NewService(o.logger, o.now),
		ids:              product.NewIDSource(o.now),
		now:              o.now,
		policy:           o.policy,
		hashNewPasswords: o.hashNewPasswords,
		state:            initialState(),
	}
}

// Ready reports whether hydration has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Store) Metrics() *Metrics {
	return s.metrics
}

// Chats is the admin chat mock. It lives in memory only.
func (s *Store) Chats() *chat.Service {
	return s.chats
}

// Hydrate loads every persisted slice, applies the hydration policy and writes
// the result back. Calling it again after success does nothing.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		return nil
	}

	loaded := defaultState()
	var corrupt []string
	for _, slice := range Slices {
		raw, err := s.kv.Get(ctx, slice)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			s.mu.Unlock()
			return internal.NewInternalError(fmt.Sprintf("failed to read slice %s", slice), err)
		}
		if err := loaded.decode(slice, raw); err != nil {
			s.log(ctx).Warn("discarding persisted slice",
				"slice", slice,
				"policy", s.policy,
				"error", internal.NewHydrationError(slice, err))
			s.metrics.HydrationFallbacks.WithLabelValues(slice).Inc()
			corrupt = append(corrupt, slice)
		}
	}

	fallbacks := corrupt
	if len(corrupt) > 0 && s.policy == internal.HydrationPolicyReset {
		// Only the store's own keys go; the backend may be shared.
		for _, slice := range Slices {
			if err := s.kv.Delete(ctx, slice); err != nil {
				s.mu.Unlock()
				return internal.NewInternalError(fmt.Sprintf("failed to delete slice %s", slice), err)
			}
		}
		loaded = defaultState()
		fallbacks = append([]string(nil), Slices...)
	}

	for _, p := range loaded.products {
		s.ids.Observe(p.ID)
	}

	s.state = loaded
	s.ready = true
	s.version++
	version := s.version
	err := s.persistLocked(ctx, Slices)
	s.mu.Unlock()

	s.logger.Debug("store hydrated", "version", version, "fallbacks", fallbacks)
	if pubErr := s.bus.PublishSync(ctx, events.NewHydrated(version, fallbacks)); pubErr != nil {
		s.logger.Warn("hydration listener failed", "error", pubErr)
	}
	return err
}

// log prefers a logger carried by ctx so caller fields such as a trace id come along.
func (s *Store) log(ctx context.Context) *slog.Logger {
	l := s.logger
	if found, ok := logger.Lookup(ctx); ok {
		l = found
	}
	if id := internal.SessionIDFromContext(ctx); id != "" {
		l = l.With("session_user_id", id)
	}
	return l
}

// apply runs fn under the write lock. fn returns the slices it changed, or an
// error to abort with nothing changed. Changed slices are persisted once the
// store is hydrated and listeners are told afterwards, outside the lock.
func (s *Store) apply(ctx context.Context, op string, fn func(st *state) ([]string, error)) error {
	s.mu.Lock()
	changed, err := fn(&s.state)
	if err != nil || len(changed) == 0 {
		s.mu.Unlock()
		return err
	}
	s.version++
	version := s.version
	var persistErr error
	if s.ready {
		persistErr = s.persistLocked(ctx, changed)
	}
	s.mu.Unlock()

	s.metrics.Mutations.WithLabelValues(op).Inc()
	if pubErr := s.bus.PublishSync(ctx, events.NewSliceChanged(version, changed...)); pubErr != nil {
		s.log(ctx).Warn("store listener failed", "operation", op, "error", pubErr)
	}
	return persistErr
}

// persistLocked writes each slice in turn. Every slice is attempted; the
// in-memory state stays as is when a write fails.
func (s *Store) persistLocked(ctx context.Context, slices []string) error {
	var errs []error
	for _, slice := range slices {
		raw, err := s.state.encode(slice)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		start := time.Now()
		err = s.kv.Set(ctx, slice, raw)
		s.metrics.PersistDuration.WithLabelValues(slice).Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.PersistErrors.WithLabelValues(slice).Inc()
			s.log(ctx).Error("failed to persist slice", "slice", slice, "error", err)
			errs = append(errs, err)
			continue
		}
		s.metrics.SliceWrites.WithLabelValues(slice).Inc()
	}
	if len(errs) > 0 {
		return internal.NewInternalError("failed to persist store state", errors.Join(errs...))
	}
	return nil
}

// Listener receives change notifications synchronously after each mutation.
type Listener func(ctx context.Context, change *events.SliceChanged) error

// Subscribe registers l and returns a func that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	return s.bus.Subscribe(events.EventTypeSliceChanged, func(ctx context.Context, e events.Event) error {
		change, ok := e.(*events.SliceChanged)
		if !ok {
			return nil
		}
		return l(ctx, change)
	})
}

// OnHydrated registers a listener for the end of hydration.
func (s *Store) OnHydrated(fn func(ctx context.Context, h *events.Hydrated) error) (unsubscribe func()) {
	return s.bus.Subscribe(events.EventTypeHydrated, func(ctx context.Context, e events.Event) error {
		h, ok := e.(*events.Hydrated)
		if !ok {
			return nil
		}
		return fn(ctx, h)
	})
}
