package order

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart is returned when placing an order from a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCartExpired is returned when the cart passed its expiry before checkout.
	ErrCartExpired = errors.New("cart has expired")
	// ErrOrderPlacementFailed wraps any mutation-phase failure; the whole
	// placement was rolled back and nothing was charged or reserved.
	ErrOrderPlacementFailed = errors.New("order placement failed")
)

// InsufficientStockError names the variant whose stock could not cover the
// requested quantity.
type InsufficientStockError struct {
	VariantID uint
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %d (%s): requested %d, available %d",
		e.VariantID, e.SKU, e.Requested, e.Available)
}

// InvalidTransitionError reports a rejected status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition from %q to %q", e.From, e.To)
}
