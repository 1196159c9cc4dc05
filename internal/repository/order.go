package repository

import (
	"context"
	"time"

	"marketplace/internal/domain"
)

// StatusTransition describes one conditional order status write. The
// repository applies the status change, the matching timestamp column
// and any transition-specific fields as a single atomic update guarded
// by the expected prior status.
type StatusTransition struct {
	From domain.OrderStatus
	To   domain.OrderStatus
	At   time.Time

	// DriverID is stored when the transition is into accepted and a
	// driver identity was supplied.
	DriverID string

	// CancellationReason is stored when the transition is into cancelled.
	CancellationReason string
}

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// GetByOrderNumber retrieves an order by its TRX number.
	GetByOrderNumber(ctx context.Context, number string) (*domain.Order, error)

	// ListByCustomer retrieves a customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)

	// Transition applies a conditional status update. It returns
	// ErrNotFound when the order does not exist and ErrStaleStatus when
	// the order exists but is no longer in the expected prior status.
	Transition(ctx context.Context, orderID string, t StatusTransition) error

	// Count returns the total number of orders.
	Count(ctx context.Context) (int, error)

	// CountByStatus returns the number of orders in the given status.
	CountByStatus(ctx context.Context, status domain.OrderStatus) (int, error)
}
