package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/standout/internal/models"
)

// SetFlag upserts a feature flag by name and returns the stored flag.
func (s *SQLiteStore) SetFlag(ctx context.Context, name string, enabled bool) (*models.FeatureFlag, error) {
	query := `
		INSERT INTO feature_flags (id, name, enabled)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET enabled = excluded.enabled
	`
	_, err := s.db.ExecContext(ctx, query, uuid.New().String(), name, enabled)
	if err != nil {
		return nil, fmt.Errorf("failed to set flag: %w", err)
	}

	return s.GetFlag(ctx, name)
}

// GetFlag retrieves a feature flag by name.
func (s *SQLiteStore) GetFlag(ctx context.Context, name string) (*models.FeatureFlag, error) {
	flag := &models.FeatureFlag{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, enabled FROM feature_flags WHERE name = ?", name,
	).Scan(&flag.ID, &flag.Name, &flag.Enabled)
	if err == sql.ErrNoRows {
		return nil, nil // Flag not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flag: %w", err)
	}

	return flag, nil
}

// ListFlags returns all feature flags.
func (s *SQLiteStore) ListFlags(ctx context.Context) ([]models.FeatureFlag, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, enabled FROM feature_flags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list flags: %w", err)
	}
	defer rows.Close()

	var flags []models.FeatureFlag
	for rows.Next() {
		var f models.FeatureFlag
		if err := rows.Scan(&f.ID, &f.Name, &f.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan flag: %w", err)
		}
		flags = append(flags, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate flags: %w", err)
	}

	return flags, nil
}
