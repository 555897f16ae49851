package models

// Event types recorded by the analytics aggregator.
const (
	EventView          = "view"
	EventAddToCart     = "add_to_cart"
	EventCheckout      = "checkout"
	EventPurchase      = "purchase"
	EventClickVariantA = "click_variant_a"
	EventClickVariantB = "click_variant_b"
)

// Event is one append-only behavioral log entry. Events are never mutated
// or deleted; the log grows monotonically.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// Type is one of the Event* constants above, or a caller-supplied
	// type for ad-hoc tracking.
	Type string

	// UserID is the acting user, empty for anonymous events.
	UserID string

	// ProductID is the subject product, empty when not product-scoped.
	ProductID string

	// Meta is optional free-form context.
	Meta string

	// CreatedAt is the Unix timestamp when the event was recorded.
	CreatedAt int64
}

// ProductCount pairs a product with an event count, used by analytics
// summaries for top-product rankings.
type ProductCount struct {
	ProductID string
	Count     int
}

// EventSummary aggregates the event log: counts per event type and the
// top products ranked by purchase-event count.
type EventSummary struct {
	Counts      map[string]int
	TopProducts []ProductCount
}
