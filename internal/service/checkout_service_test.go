package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/standout/internal/analytics"
	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/notify"
	"github.com/mmynk/standout/internal/storage"
	"github.com/mmynk/standout/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "standout-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func newCheckoutService(t *testing.T) (*CheckoutService, *sqlite.SQLiteStore, *notify.Hub) {
	t.Helper()
	store := newTestStore(t)
	hub := notify.NewHub()
	return NewCheckoutService(store, hub, analytics.NewAggregator(store)), store, hub
}

func createUser(t *testing.T, store storage.Store, email string) *models.User {
	t.Helper()
	user := models.NewUser(email, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func createProduct(t *testing.T, store storage.Store, title string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Title: title, Description: title + " description", Price: price, Stock: stock}
	if err := store.CreateProduct(context.Background(), product); err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return product
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects quantity below one", func(t *testing.T) {
		svc, store, _ := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")
		if err := svc.AddToCart(ctx, user.ID, "any", 0); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		svc, store, _ := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")
		if err := svc.AddToCart(ctx, user.ID, "nonexistent", 1); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects quantity above current stock", func(t *testing.T) {
		svc, store, _ := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")
		product := createProduct(t, store, "Scarce", 5, 2)

		err := svc.AddToCart(ctx, user.ID, product.ID, 3)
		var stockErr *storage.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Errorf("expected InsufficientStockError, got %v", err)
		}
	})

	t.Run("records an add_to_cart event", func(t *testing.T) {
		svc, store, _ := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")
		product := createProduct(t, store, "Widget", 5, 10)

		if err := svc.AddToCart(ctx, user.ID, product.ID, 2); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}

		summary, err := store.SummarizeEvents(ctx, 5)
		if err != nil {
			t.Fatalf("SummarizeEvents failed: %v", err)
		}
		if summary.Counts[models.EventAddToCart] != 1 {
			t.Errorf("add_to_cart count = %d, want 1", summary.Counts[models.EventAddToCart])
		}
	})
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()

	t.Run("projects live prices and totals", func(t *testing.T) {
		svc, store, _ := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")
		product := createProduct(t, store, "Mug", 10.00, 50)

		if err := svc.AddToCart(ctx, user.ID, product.ID, 3); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}

		view, err := svc.GetCart(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetCart failed: %v", err)
		}
		if len(view.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(view.Lines))
		}
		if math.Abs(view.Lines[0].Subtotal-30.00) > 0.001 || math.Abs(view.Total-30.00) > 0.001 {
			t.Errorf("subtotal = %v, total = %v, want 30.00", view.Lines[0].Subtotal, view.Total)
		}

		// The cart projects the price of the moment it is read.
		product.Price = 12.50
		if err := store.UpdateProduct(ctx, product); err != nil {
			t.Fatalf("UpdateProduct failed: %v", err)
		}
		view, err = svc.GetCart(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetCart failed: %v", err)
		}
		if math.Abs(view.Total-37.50) > 0.001 {
			t.Errorf("total after reprice = %v, want 37.50", view.Total)
		}
	})

	t.Run("empty cart has zero total", func(t *testing.T) {
		svc, store, _ := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")

		view, err := svc.GetCart(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetCart failed: %v", err)
		}
		if len(view.Lines) != 0 || view.Total != 0 {
			t.Errorf("expected empty view, got %+v", view)
		}
	})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart fails fast", func(t *testing.T) {
		svc, store, _ := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")

		_, err := svc.Checkout(ctx, user.ID)
		if !errors.Is(err, ErrEmptyCart) {
			t.Errorf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("success freezes prices into the order", func(t *testing.T) {
		svc, store, _ := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")
		product := createProduct(t, store, "Mug", 10.00, 50)
		if err := svc.AddToCart(ctx, user.ID, product.ID, 2); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}

		order, err := svc.Checkout(ctx, user.ID)
		if err != nil {
			t.Fatalf("Checkout failed: %v", err)
		}
		if math.Abs(order.Total-20.00) > 0.001 {
			t.Errorf("total = %v, want 20.00", order.Total)
		}

		product.Price = 99.00
		if err := store.UpdateProduct(ctx, product); err != nil {
			t.Fatalf("UpdateProduct failed: %v", err)
		}
		frozen, err := store.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if math.Abs(frozen.Total-20.00) > 0.001 {
			t.Errorf("frozen total = %v, want 20.00", frozen.Total)
		}

		view, err := svc.GetCart(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetCart failed: %v", err)
		}
		if len(view.Lines) != 0 {
			t.Errorf("expected cart cleared, got %d lines", len(view.Lines))
		}
	})

	t.Run("insufficient stock leaves the cart intact", func(t *testing.T) {
		svc, store, _ := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")
		product := createProduct(t, store, "Scarce", 10, 5)
		if err := svc.AddToCart(ctx, user.ID, product.ID, 4); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}

		// Stock drops after the add but before checkout.
		if _, err := store.SetProductStock(ctx, product.ID, 3); err != nil {
			t.Fatalf("SetProductStock failed: %v", err)
		}

		_, err := svc.Checkout(ctx, user.ID)
		var stockErr *storage.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("expected InsufficientStockError, got %v", err)
		}

		view, err := svc.GetCart(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetCart failed: %v", err)
		}
		if len(view.Lines) != 1 || view.Lines[0].Qty != 4 {
			t.Errorf("cart changed on failed checkout: %+v", view)
		}
		got, _ := store.GetProduct(ctx, product.ID)
		if got.Stock != 3 {
			t.Errorf("stock = %d, want 3", got.Stock)
		}
	})

	t.Run("broadcasts new stock to listeners", func(t *testing.T) {
		svc, store, hub := newCheckoutService(t)
		user := createUser(t, store, "a@example.com")
		product := createProduct(t, store, "Watched", 10, 5)
		if err := svc.AddToCart(ctx, user.ID, product.ID, 2); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}

		listener := notify.NewClient(hub, nil)
		hub.Connect(listener)
		defer hub.Disconnect(listener)

		if _, err := svc.Checkout(ctx, user.ID); err != nil {
			t.Fatalf("Checkout failed: %v", err)
		}

		select {
		case update := <-listener.Updates():
			if update.ProductID != product.ID || update.Stock != 3 {
				t.Errorf("unexpected update: %+v", update)
			}
		case <-time.After(time.Second):
			t.Fatal("no stock update received")
		}
	})
}
