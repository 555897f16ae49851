package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/standout/internal/analytics"
	"github.com/mmynk/standout/internal/metrics"
	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/notify"
	"github.com/mmynk/standout/internal/storage"
)

var (
	// ErrEmptyCart is returned by Checkout when the user's cart has no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidQuantity is returned by AddToCart for quantities below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// CheckoutService implements the cart and checkout surface. Stock is
// checked best-effort at add time and authoritatively inside the checkout
// transaction; nothing is reserved in between, so overselling windows
// between add and checkout resolve at checkout, not earlier.
type CheckoutService struct {
	store      storage.Store
	hub        *notify.Hub
	aggregator *analytics.Aggregator
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(store storage.Store, hub *notify.Hub, aggregator *analytics.Aggregator) *CheckoutService {
	return &CheckoutService{store: store, hub: hub, aggregator: aggregator}
}

// AddToCart merges qty units of the product into the user's cart, creating
// the cart on first use. Fails when the product does not exist or its
// current stock is already below qty; the definitive stock check still
// happens at checkout.
func (s *CheckoutService) AddToCart(ctx context.Context, userID, productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.Stock < qty {
		return &storage.InsufficientStockError{ProductTitle: product.Title}
	}

	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get cart: %w", err)
	}

	if err := s.store.UpsertCartItem(ctx, cart.ID, productID, qty); err != nil {
		return err
	}

	if err := s.aggregator.Record(ctx, &models.Event{
		Type:      models.EventAddToCart,
		UserID:    userID,
		ProductID: productID,
	}); err != nil {
		slog.Warn("Failed to record add_to_cart event", "error", err)
	}

	slog.Debug("Added to cart", "user_id", userID, "product_id", productID, "qty", qty)
	return nil
}

// GetCart returns the live projection of the user's cart: each line joined
// with the current product title and price, per-line subtotals and the
// overall total rounded to 2 decimals. Prices here are live, unlike the
// snapshots frozen into a completed order. Lines referencing deleted
// products are skipped; checkout is where they become a hard error.
func (s *CheckoutService) GetCart(ctx context.Context, userID string) (*models.CartView, error) {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	items, err := s.store.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{Lines: []models.CartLine{}}
	total := 0.0
	for _, item := range items {
		product, err := s.store.GetProduct(ctx, item.ProductID)
		if errors.Is(err, storage.ErrNotFound) {
			slog.Warn("Cart references deleted product", "cart_id", cart.ID, "product_id", item.ProductID)
			continue
		}
		if err != nil {
			return nil, err
		}

		subtotal := product.Price * float64(item.Qty)
		view.Lines = append(view.Lines, models.CartLine{
			ProductID: product.ID,
			Title:     product.Title,
			Qty:       item.Qty,
			Price:     product.Price,
			Subtotal:  models.Round2(subtotal),
		})
		total += subtotal
	}
	view.Total = models.Round2(total)

	return view, nil
}

// Checkout validates the user's cart against current stock and commits it
// as an order in a single atomic unit: stock decrements, the order with
// its price snapshots, one purchase event per line, and the cart clear all
// happen in one transaction or not at all. On success each decremented
// product's new stock is broadcast to inventory listeners.
func (s *CheckoutService) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	items, err := s.store.ListCartItems(ctx, cart.ID)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if len(items) == 0 {
		metrics.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	order, err := s.store.CreateOrder(ctx, userID, cart.ID, items)
	if err != nil {
		var stockErr *storage.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			metrics.CheckoutsTotal.WithLabelValues("insufficient_stock").Inc()
			slog.Info("Checkout rejected", "user_id", userID, "product", stockErr.ProductTitle)
		case errors.Is(err, storage.ErrNotFound):
			metrics.CheckoutsTotal.WithLabelValues("not_found").Inc()
		default:
			metrics.CheckoutsTotal.WithLabelValues("error").Inc()
			slog.Error("Checkout failed", "user_id", userID, "error", err)
		}
		return nil, err
	}

	metrics.CheckoutsTotal.WithLabelValues("ok").Inc()
	metrics.OrderValue.Observe(order.Total)

	for _, item := range order.Items {
		product, err := s.store.GetProduct(ctx, item.ProductID)
		if err != nil {
			slog.Warn("Failed to read product for stock broadcast", "product_id", item.ProductID, "error", err)
			continue
		}
		s.hub.Broadcast(notify.NewStockUpdate(product.ID, product.Stock))
	}

	slog.Info("Checkout completed",
		"user_id", userID,
		"order_id", order.ID,
		"total", order.Total,
		"lines", len(order.Items),
	)
	return order, nil
}
