// Package notify fans stock-change notifications out to live listeners.
// Delivery is best-effort: a listener that has disconnected or whose send
// buffer is full is skipped, never failing the broadcast.
package notify

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// StockUpdate is the payload broadcast whenever a product's stock changes,
// whether by checkout or by an admin edit.
type StockUpdate struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// NewStockUpdate builds the payload for a stock change.
func NewStockUpdate(productID string, stock int) StockUpdate {
	return StockUpdate{Type: "stock_update", ProductID: productID, Stock: stock}
}

// clientIDCounter generates unique IDs for connected clients, used only
// for logging.
var clientIDCounter atomic.Uint64

// Hub maintains the set of connected listeners and broadcasts stock
// updates to them. Connect, Disconnect, and Broadcast are all safe to call
// concurrently: the listener set is guarded by a mutex, so a disconnect
// cannot corrupt an in-flight broadcast's iteration.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	// onCount, if set, receives the listener count after every
	// connect/disconnect. Used to drive the metrics gauge.
	onCount func(n int)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// OnCountChange registers a callback invoked with the listener count after
// every connect and disconnect. Must be called before the hub is used.
func (h *Hub) OnCountChange(fn func(n int)) {
	h.onCount = fn
}

// Connect registers a listener.
func (h *Hub) Connect(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	if h.onCount != nil {
		h.onCount(n)
	}
	slog.Info("Inventory listener connected", "client_id", c.id, "total_listeners", n)
}

// Disconnect unregisters a listener and closes its send channel. Calling
// it for an already-removed listener is a no-op.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	if h.onCount != nil {
		h.onCount(n)
	}
	slog.Info("Inventory listener disconnected", "client_id", c.id, "total_listeners", n)
}

// Broadcast delivers the update to every connected listener. A listener
// whose buffer is full is skipped; slow consumers lose updates rather than
// blocking the sender.
func (h *Hub) Broadcast(update StockUpdate) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- update:
		default:
			slog.Debug("Dropped stock update for slow listener", "client_id", c.id, "product_id", update.ProductID)
		}
	}
}

// Len returns the number of connected listeners.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
