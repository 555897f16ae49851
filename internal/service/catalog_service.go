package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/notify"
	"github.com/mmynk/standout/internal/storage"
)

// toggleRestockLevel is the stock an out-of-stock product jumps to when an
// admin toggles it back on.
const toggleRestockLevel = 10

// CatalogService implements catalog browsing and the admin stock-control
// surface. Admin stock edits broadcast to the same inventory feed that
// checkout decrements do.
type CatalogService struct {
	store storage.Store
	hub   *notify.Hub
}

// NewCatalogService creates a catalog service.
func NewCatalogService(store storage.Store, hub *notify.Hub) *CatalogService {
	return &CatalogService{store: store, hub: hub}
}

// ListProducts returns the full catalog in storage order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.ListProducts(ctx)
}

// GetProduct returns one product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// CreateProduct persists a new product after validating its invariants.
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if product.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return s.store.CreateProduct(ctx, product)
}

// ToggleStock flips a product between out-of-stock and a restock level:
// any positive stock becomes 0, zero stock becomes 10. The resulting stock
// is broadcast to inventory listeners.
func (s *CatalogService) ToggleStock(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	newStock := 0
	if product.Stock == 0 {
		newStock = toggleRestockLevel
	}

	updated, err := s.store.SetProductStock(ctx, productID, newStock)
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(notify.NewStockUpdate(updated.ID, updated.Stock))
	slog.Info("Stock toggled", "product_id", updated.ID, "stock", updated.Stock)
	return updated, nil
}

// ImportCSV creates products from CSV rows. The first row is a header
// naming any of: title, description, price, stock, image_url. Unknown
// columns are ignored. Returns the number of products created; the import
// stops at the first malformed row.
func (s *CatalogService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	created := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, fmt.Errorf("failed to read CSV row: %w", err)
		}

		price, err := strconv.ParseFloat(field(row, "price"), 64)
		if err != nil || price < 0 {
			return created, fmt.Errorf("row %d: invalid price %q", created+1, field(row, "price"))
		}
		stock := 0
		if v := field(row, "stock"); v != "" {
			stock, err = strconv.Atoi(v)
			if err != nil || stock < 0 {
				return created, fmt.Errorf("row %d: invalid stock %q", created+1, v)
			}
		}

		product := &models.Product{
			Title:       field(row, "title"),
			Description: field(row, "description"),
			Price:       price,
			Stock:       stock,
			ImageURL:    field(row, "image_url"),
		}
		if err := s.store.CreateProduct(ctx, product); err != nil {
			return created, err
		}
		created++
	}

	slog.Info("CSV import completed", "products_created", created)
	return created, nil
}

// SetFlag upserts a feature flag.
func (s *CatalogService) SetFlag(ctx context.Context, name string, enabled bool) (*models.FeatureFlag, error) {
	if name == "" {
		return nil, fmt.Errorf("flag name is required")
	}
	flag, err := s.store.SetFlag(ctx, name, enabled)
	if err != nil {
		return nil, err
	}
	slog.Info("Feature flag set", "name", flag.Name, "enabled", flag.Enabled)
	return flag, nil
}

// GetFlag retrieves a feature flag by name. Returns (nil, nil) if unset.
func (s *CatalogService) GetFlag(ctx context.Context, name string) (*models.FeatureFlag, error) {
	return s.store.GetFlag(ctx, name)
}

// ListFlags returns all feature flags.
func (s *CatalogService) ListFlags(ctx context.Context) ([]models.FeatureFlag, error) {
	return s.store.ListFlags(ctx)
}
