// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/standout/internal/models"
)

// Store defines the interface for storefront storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns (nil, nil) if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateCategory persists a new category, generating an ID if unset.
	CreateCategory(ctx context.Context, category *models.Category) error

	// ListCategories returns all categories in storage order.
	ListCategories(ctx context.Context) ([]models.Category, error)

	// CreateProduct persists a new product, generating an ID if unset.
	// Fails if price or stock is negative.
	CreateProduct(ctx context.Context, product *models.Product) error

	// GetProduct retrieves a product by ID.
	// Returns ErrNotFound if the product does not exist.
	GetProduct(ctx context.Context, id string) (*models.Product, error)

	// ListProducts returns all products in storage order. The ordering is
	// stable per database and is what the recommendation fallback and
	// zero-similarity ranking rely on.
	ListProducts(ctx context.Context) ([]models.Product, error)

	// UpdateProduct overwrites an existing product's mutable fields.
	// Returns ErrNotFound if the product does not exist.
	UpdateProduct(ctx context.Context, product *models.Product) error

	// SetProductStock sets a product's stock to an absolute value and
	// returns the updated product. Used by admin stock edits.
	SetProductStock(ctx context.Context, id string, stock int) (*models.Product, error)

	// GetOrCreateCart returns the user's cart, creating it on first use.
	GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error)

	// UpsertCartItem merges qty into the cart's line for the product,
	// creating the line if absent. qty must be positive.
	UpsertCartItem(ctx context.Context, cartID, productID string, qty int) error

	// ListCartItems returns all lines in the cart.
	ListCartItems(ctx context.Context, cartID string) ([]models.CartItem, error)

	// CreateOrder atomically commits a checkout: re-validates stock for
	// every line, decrements it, creates the order with its item
	// snapshots, appends one purchase event per line, and clears the
	// cart. Either every effect is applied or none are.
	//
	// Returns *InsufficientStockError naming the first offending product
	// when any line's quantity exceeds available stock, or ErrNotFound
	// when a line references a deleted product.
	CreateOrder(ctx context.Context, userID, cartID string, items []models.CartItem) (*models.Order, error)

	// GetOrder retrieves an order with its items.
	// Returns ErrNotFound if the order does not exist.
	GetOrder(ctx context.Context, id string) (*models.Order, error)

	// AppendEvent appends one event to the log, generating an ID and
	// timestamp if unset. Events are never updated or deleted.
	AppendEvent(ctx context.Context, event *models.Event) error

	// SummarizeEvents returns counts by event type and the top-n products
	// by purchase-event count, ties broken by product ID ascending.
	SummarizeEvents(ctx context.Context, topN int) (*models.EventSummary, error)

	// SetFlag upserts a feature flag by name and returns it.
	SetFlag(ctx context.Context, name string, enabled bool) (*models.FeatureFlag, error)

	// GetFlag retrieves a feature flag by name.
	// Returns (nil, nil) if no such flag exists.
	GetFlag(ctx context.Context, name string) (*models.FeatureFlag, error)

	// ListFlags returns all feature flags.
	ListFlags(ctx context.Context) ([]models.FeatureFlag, error)

	// Close releases any resources held by the store.
	Close() error
}
