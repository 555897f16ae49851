package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/standout/internal/metrics"
	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/recommend"
	"github.com/mmynk/standout/internal/storage"
)

// DefaultRecommendations is the result size used when the caller does not
// specify one.
const DefaultRecommendations = 4

// RecommendService ranks catalog products by description similarity. The
// vector space is rebuilt from the stored descriptions on every call, so
// results always reflect the latest product text. Acceptable for small
// catalogs; a rebuild-on-write cache would be the next step for large ones.
type RecommendService struct {
	store storage.Store
}

// NewRecommendService creates a recommendation service.
func NewRecommendService(store storage.Store) *RecommendService {
	return &RecommendService{store: store}
}

// Recommend returns up to n products most similar to the given product,
// never including the product itself. When productID is not in the catalog
// the first n products in storage order are returned instead; this is a
// defined degraded mode, not an error.
func (s *RecommendService) Recommend(ctx context.Context, productID string, n int) ([]models.Product, error) {
	if n <= 0 {
		n = DefaultRecommendations
	}

	start := time.Now()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	}()

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(products) == 0 {
		return []models.Product{}, nil
	}

	byID := make(map[string]models.Product, len(products))
	docs := make([]recommend.Doc, len(products))
	for i, p := range products {
		byID[p.ID] = p
		docs[i] = recommend.Doc{ID: p.ID, Text: p.Description}
	}

	ids, ok := recommend.Rank(docs, productID, n)
	if !ok {
		// Unknown product: fall back to plain storage order.
		if n > len(products) {
			n = len(products)
		}
		return products[:n], nil
	}

	result := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		result = append(result, byID[id])
	}
	return result, nil
}
