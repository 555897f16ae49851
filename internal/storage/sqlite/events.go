package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/standout/internal/models"
)

// AppendEvent appends one event to the log, generating an ID and timestamp
// if unset.
func (s *SQLiteStore) AppendEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (id, type, user_id, product_id, meta, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, event.Type, event.UserID, event.ProductID, event.Meta, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}

// SummarizeEvents returns counts by event type and the top-n products by
// purchase-event count. The product-id tiebreak makes rankings stable for
// equal counts.
func (s *SQLiteStore) SummarizeEvents(ctx context.Context, topN int) (*models.EventSummary, error) {
	summary := &models.EventSummary{Counts: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx, "SELECT type, COUNT(*) FROM events GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		summary.Counts[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event counts: %w", err)
	}

	topRows, err := s.db.QueryContext(ctx, `
		SELECT product_id, COUNT(*) AS purchases
		FROM events
		WHERE type = ? AND product_id != ''
		GROUP BY product_id
		ORDER BY purchases DESC, product_id ASC
		LIMIT ?
	`, models.EventPurchase, topN)
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}
	defer topRows.Close()

	for topRows.Next() {
		var pc models.ProductCount
		if err := topRows.Scan(&pc.ProductID, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan product count: %w", err)
		}
		summary.TopProducts = append(summary.TopProducts, pc)
	}
	if err := topRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product counts: %w", err)
	}

	return summary, nil
}
