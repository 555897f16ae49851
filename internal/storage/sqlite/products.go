package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/storage"
)

const productColumns = `id, title, description, price, image_url, stock, category_id,
	variant_a_title, variant_b_title, variant_a_desc, variant_b_desc`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	var categoryID sql.NullString
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.Stock,
		&categoryID,
		&p.VariantATitle,
		&p.VariantBTitle,
		&p.VariantADesc,
		&p.VariantBDesc,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryID = categoryID.String
	return p, nil
}

// nullable converts an empty string to NULL for optional foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// CreateCategory inserts a new category, generating an ID if unset.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, name, slug) VALUES (?, ?, ?)",
		category.ID, category.Name, category.Slug,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// ListCategories returns all categories in storage order.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, slug FROM categories ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// CreateProduct inserts a new product, generating an ID if unset.
func (s *SQLiteStore) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Stock,
		nullable(product.CategoryID),
		product.VariantATitle,
		product.VariantBTitle,
		product.VariantADesc,
		product.VariantBDesc,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetProduct retrieves a product by ID.
func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id,
	)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// ListProducts returns all products in insertion order. The rowid ordering
// is the "storage order" the recommendation fallback relies on.
func (s *SQLiteStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// UpdateProduct overwrites an existing product's mutable fields.
func (s *SQLiteStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET title = ?, description = ?, price = ?, image_url = ?, stock = ?,
		    category_id = ?, variant_a_title = ?, variant_b_title = ?,
		    variant_a_desc = ?, variant_b_desc = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		product.Title,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Stock,
		nullable(product.CategoryID),
		product.VariantATitle,
		product.VariantBTitle,
		product.VariantADesc,
		product.VariantBDesc,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// SetProductStock sets a product's stock to an absolute value and returns
// the updated product.
func (s *SQLiteStore) SetProductStock(ctx context.Context, id string, stock int) (*models.Product, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE products SET stock = ? WHERE id = ?", stock, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set product stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check stock update result: %w", err)
	}
	if affected == 0 {
		return nil, storage.ErrNotFound
	}

	return s.GetProduct(ctx, id)
}
