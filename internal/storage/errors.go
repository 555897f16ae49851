package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// InsufficientStockError is returned by CreateOrder when a cart line
// requests more units than are available at commit time. It names the
// offending product so the caller can report which line failed.
type InsufficientStockError struct {
	ProductTitle string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductTitle)
}
