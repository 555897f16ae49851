package models

// Order is an immutable record of a completed checkout. Total is computed
// once at checkout time and never recomputed, so later price edits do not
// affect past orders.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string

	// UserID is the purchasing user.
	UserID string

	// Total is the sum of unit price x quantity across all items,
	// rounded to 2 decimal places, frozen at checkout time.
	Total float64

	// CreatedAt is the Unix timestamp when the order was committed.
	CreatedAt int64

	// Items are the purchased lines.
	Items []OrderItem
}

// OrderItem snapshots one purchased product line. PriceEach is the unit
// price at the moment of purchase, decoupled from later price changes.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Qty       int
	PriceEach float64
}
