package analytics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/storage/sqlite"
)

func newTestAggregator(t *testing.T) (*Aggregator, *sqlite.SQLiteStore) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "standout-analytics-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewAggregator(store), store
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a type", func(t *testing.T) {
		agg, _ := newTestAggregator(t)
		if err := agg.Record(ctx, &models.Event{ProductID: "p1"}); err == nil {
			t.Error("expected error for missing event type")
		}
	})

	t.Run("fills ID and timestamp", func(t *testing.T) {
		agg, store := newTestAggregator(t)
		event := &models.Event{Type: models.EventView, ProductID: "p1"}
		if err := agg.Record(ctx, event); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		summary, err := store.SummarizeEvents(ctx, 5)
		if err != nil {
			t.Fatalf("SummarizeEvents failed: %v", err)
		}
		if summary.Counts[models.EventView] != 1 {
			t.Errorf("view count = %d, want 1", summary.Counts[models.EventView])
		}
	})
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()

	t.Run("counts by type and ranks purchases", func(t *testing.T) {
		agg, _ := newTestAggregator(t)
		events := []models.Event{
			{Type: models.EventView, ProductID: "p1"},
			{Type: models.EventView, ProductID: "p2"},
			{Type: models.EventPurchase, ProductID: "p1"},
			{Type: models.EventPurchase, ProductID: "p1"},
			{Type: models.EventPurchase, ProductID: "p2"},
		}
		for i := range events {
			if err := agg.Record(ctx, &events[i]); err != nil {
				t.Fatalf("Record failed: %v", err)
			}
		}

		summary, err := agg.Summarize(ctx, 5)
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		if summary.Counts[models.EventView] != 2 || summary.Counts[models.EventPurchase] != 3 {
			t.Errorf("unexpected counts: %v", summary.Counts)
		}
		if len(summary.TopProducts) != 2 {
			t.Fatalf("expected 2 ranked products, got %d", len(summary.TopProducts))
		}
		if summary.TopProducts[0].ProductID != "p1" || summary.TopProducts[0].Count != 2 {
			t.Errorf("unexpected top product: %+v", summary.TopProducts[0])
		}
	})

	t.Run("non-positive topN uses the default", func(t *testing.T) {
		agg, _ := newTestAggregator(t)
		for i := 0; i < DefaultTopN+2; i++ {
			event := models.Event{Type: models.EventPurchase, ProductID: string(rune('a' + i))}
			if err := agg.Record(ctx, &event); err != nil {
				t.Fatalf("Record failed: %v", err)
			}
		}

		summary, err := agg.Summarize(ctx, 0)
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		if len(summary.TopProducts) != DefaultTopN {
			t.Errorf("ranked products = %d, want %d", len(summary.TopProducts), DefaultTopN)
		}
	})

	t.Run("empty log yields empty summary", func(t *testing.T) {
		agg, _ := newTestAggregator(t)
		summary, err := agg.Summarize(ctx, 5)
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		if len(summary.Counts) != 0 || len(summary.TopProducts) != 0 {
			t.Errorf("expected empty summary, got %+v", summary)
		}
	})
}
