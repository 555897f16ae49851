package models

// Cart holds a user's pending purchases. Each user has at most one cart,
// created lazily on the first add and never deleted; a successful checkout
// clears its items instead.
type Cart struct {
	// ID is the unique identifier for the cart (UUID format).
	ID string

	// UserID is the owning user.
	UserID string

	// CreatedAt is the Unix timestamp when the cart was first created.
	CreatedAt int64
}

// CartItem is one product line in a cart. At most one line exists per
// (cart, product) pair; repeated adds accumulate into Qty.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string

	// Qty is always >= 1.
	Qty int
}

// CartLine is the read-only projection of a cart item joined with the
// live product record. Subtotal reflects the current price, not a
// snapshot (unlike OrderItem).
type CartLine struct {
	ProductID string
	Title     string
	Qty       int
	Price     float64
	Subtotal  float64
}

// CartView is the full cart projection returned to callers.
type CartView struct {
	Lines []CartLine
	Total float64
}
