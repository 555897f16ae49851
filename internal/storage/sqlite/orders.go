package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/storage"
)

// CreateOrder atomically commits a checkout. All reads and writes happen
// inside one immediate transaction, so the stock values validated here are
// the same ones decremented: a concurrently committed checkout cannot
// invalidate them. On any failure the transaction rolls back and neither
// stock, order, events, nor cart change.
func (s *SQLiteStore) CreateOrder(ctx context.Context, userID, cartID string, items []models.CartItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot create order with no items")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Validation pass: read current title, price, and stock for every
	// line under the transaction. Fail before any mutation.
	type line struct {
		productID string
		title     string
		price     float64
		qty       int
	}
	lines := make([]line, 0, len(items))
	total := 0.0
	for _, item := range items {
		var l line
		l.productID = item.ProductID
		l.qty = item.Qty
		var stock int
		err := tx.QueryRowContext(ctx,
			"SELECT title, price, stock FROM products WHERE id = ?",
			item.ProductID,
		).Scan(&l.title, &l.price, &stock)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, storage.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read product: %w", err)
		}
		if stock < item.Qty {
			return nil, &storage.InsufficientStockError{ProductTitle: l.title}
		}
		total += l.price * float64(item.Qty)
		lines = append(lines, l)
	}
	total = models.Round2(total)

	// Commit pass: order, decrements, snapshots, purchase events, cart clear.
	order := &models.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Total:     total,
		CreatedAt: time.Now().Unix(),
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO orders (id, user_id, total, created_at) VALUES (?, ?, ?, ?)",
		order.ID, order.UserID, order.Total, order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, l := range lines {
		// The stock condition is re-stated on the decrement itself, so
		// even a backend without transaction-scoped reads could not
		// drive stock negative.
		result, err := tx.ExecContext(ctx,
			"UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?",
			l.qty, l.productID, l.qty,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check decrement result: %w", err)
		}
		if affected == 0 {
			return nil, &storage.InsufficientStockError{ProductTitle: l.title}
		}

		item := models.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: l.productID,
			Qty:       l.qty,
			PriceEach: l.price,
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (id, order_id, product_id, qty, price_each) VALUES (?, ?, ?, ?, ?)",
			item.ID, item.OrderID, item.ProductID, item.Qty, item.PriceEach,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
		order.Items = append(order.Items, item)

		_, err = tx.ExecContext(ctx,
			"INSERT INTO events (id, type, user_id, product_id, meta, created_at) VALUES (?, ?, ?, ?, '', ?)",
			uuid.New().String(), models.EventPurchase, userID, l.productID, order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert purchase event: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = ?", cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

// GetOrder retrieves an order by ID, including all items.
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, total, created_at FROM orders WHERE id = ?", id,
	).Scan(&order.ID, &order.UserID, &order.Total, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, order_id, product_id, qty, price_each FROM order_items WHERE order_id = ? ORDER BY rowid",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Qty, &item.PriceEach); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return order, nil
}
