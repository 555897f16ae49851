package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/standout/internal/models"
)

// GetOrCreateCart returns the user's cart, creating it on first use.
// Carts are never deleted; checkout clears their items instead.
func (s *SQLiteStore) GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart := &models.Cart{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, created_at FROM carts WHERE user_id = ?", userID,
	).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err == nil {
		return cart, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	cart = &models.Cart{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
	}

	// INSERT OR IGNORE plus re-read handles two concurrent first adds for
	// the same user: both end up with the single cart the UNIQUE
	// constraint allows.
	_, err = s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO carts (id, user_id, created_at) VALUES (?, ?, ?)",
		cart.ID, cart.UserID, cart.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT id, user_id, created_at FROM carts WHERE user_id = ?", userID,
	).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read cart: %w", err)
	}

	return cart, nil
}

// UpsertCartItem merges qty into the cart's line for the product, creating
// the line if absent.
func (s *SQLiteStore) UpsertCartItem(ctx context.Context, cartID, productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}

	query := `
		INSERT INTO cart_items (id, cart_id, product_id, qty)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET qty = qty + excluded.qty
	`
	_, err := s.db.ExecContext(ctx, query, uuid.New().String(), cartID, productID, qty)
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// ListCartItems returns all lines in the cart.
func (s *SQLiteStore) ListCartItems(ctx context.Context, cartID string) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, cart_id, product_id, qty FROM cart_items WHERE cart_id = ? ORDER BY rowid",
		cartID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Qty); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return items, nil
}
