// Package analytics records and summarizes behavioral events. The event
// log is an append-only sink: the aggregator writes and counts events but
// never reads them to drive control decisions.
package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/standout/internal/metrics"
	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/storage"
)

// DefaultTopN is the top-product ranking size used when the caller does
// not specify one.
const DefaultTopN = 5

// Aggregator appends events and produces summaries over the log.
type Aggregator struct {
	store storage.Store
}

// NewAggregator creates an aggregator backed by the given store.
func NewAggregator(store storage.Store) *Aggregator {
	return &Aggregator{store: store}
}

// Record appends one event. It fails only when the event has no type or
// the store is unavailable; storage errors propagate unmodified and are
// not retried here.
func (a *Aggregator) Record(ctx context.Context, event *models.Event) error {
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}

	if err := a.store.AppendEvent(ctx, event); err != nil {
		return err
	}

	metrics.EventsRecorded.WithLabelValues(event.Type).Inc()
	slog.Debug("Event recorded", "type", event.Type, "product_id", event.ProductID, "user_id", event.UserID)
	return nil
}

// Summarize returns counts of events by type and the top-n products by
// purchase-event count. Ties rank by product ID ascending, which keeps
// the ordering deterministic.
func (a *Aggregator) Summarize(ctx context.Context, topN int) (*models.EventSummary, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	summary, err := a.store.SummarizeEvents(ctx, topN)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize events: %w", err)
	}
	return summary, nil
}
