package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for orders.
type Repository interface {
	// Create persists a settled order.
	Create(ctx context.Context, o *Order) error

	// ListByBuyer returns a buyer's orders, newest first.
	ListByBuyer(ctx context.Context, buyer uuid.UUID) ([]*Order, error)
}
