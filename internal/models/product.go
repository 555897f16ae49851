package models

// Category groups products for browsing.
type Category struct {
	// ID is the unique identifier for the category (UUID format).
	ID string

	// Name is the display name (e.g. "Gadgets").
	Name string

	// Slug is the URL-friendly unique name (e.g. "gadgets").
	Slug string
}

// Product represents a single catalog item.
//
// Invariants enforced by the storage layer:
//   - Stock is never negative.
//   - Price is never negative.
type Product struct {
	// ID is the unique identifier for the product (UUID format).
	ID string

	// Title is the display name of the product.
	Title string

	// Description is free text used by the recommendation engine.
	Description string

	// Price is the current unit price. Orders snapshot this value at
	// checkout time; carts always reflect the live value.
	Price float64

	// Stock is the number of units available. Decremented only by the
	// checkout transaction or admin stock edits.
	Stock int

	// ImageURL is an optional product image link.
	ImageURL string

	// CategoryID references the owning category, empty if uncategorized.
	CategoryID string

	// Experiment display variants. Either may be empty; which one a
	// shopper sees is decided by the boundary layer when the
	// "experiments" feature flag is enabled.
	VariantATitle string
	VariantBTitle string
	VariantADesc  string
	VariantBDesc  string
}

// FeatureFlag is a named boolean toggle, unique by name.
// Mutated only by admin action.
type FeatureFlag struct {
	ID      string
	Name    string
	Enabled bool
}
