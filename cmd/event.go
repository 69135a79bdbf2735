package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/frahmantamala/marketplace-storefront/internal/core/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// traceStoreEvents logs every event the store publishes.
func traceStoreEvents(bus *events.EventBus, logger *slog.Logger) {
	handler := func(ctx context.Context, event events.Event) error {
		logger.Info("store event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	}
	bus.Subscribe(events.EventTypeHydrated, handler)
	bus.Subscribe(events.EventTypeSliceChanged, handler)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
