package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "storefront"

// Metrics are the store's prometheus collectors. A nil Registerer builds them unregistered.
type Metrics struct {
	Mutations          *prometheus.CounterVec
	SliceWrites        *prometheus.CounterVec
	PersistErrors      *prometheus.CounterVec
	PersistDuration    *prometheus.HistogramVec
	HydrationFallbacks *prometheus.CounterVec
	LoginAttempts      *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Store operations that changed at least one slice.",
		}, []string{"operation"}),
		SliceWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "slice_writes_total",
			Help:      "Slices serialized to the key-value backend.",
		}, []string{"slice"}),
		PersistErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "persist_errors_total",
			Help:      "Slice writes the backend rejected.",
		}, []string{"slice"}),
		PersistDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "persist_duration_seconds",
			Help:      "Time spent writing one slice.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"slice"}),
		HydrationFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "hydration_fallbacks_total",
			Help:      "Persisted slices discarded during hydration because they could not be decoded.",
		}, []string{"slice"}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
	}
}
