package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace/internal/domain"
	"marketplace/internal/repository"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

// NewOrderRepositoryWithTx creates an order repository using a transaction.
func NewOrderRepositoryWithTx(tx *sql.Tx) *OrderRepository {
	return &OrderRepository{q: tx}
}

const orderColumns = `
	id, order_number, customer_id, driver_id, merchant_id,
	service_category_id, vehicle_type_id,
	pickup_address, pickup_latitude, pickup_longitude,
	destination_address, destination_latitude, destination_longitude,
	distance_km, estimated_duration_minutes,
	base_fare, distance_fare, time_fare, subtotal, discount_amount,
	total_amount, commission_amount,
	status, notes,
	accepted_at, picked_up_at, delivered_at, completed_at, cancelled_at,
	cancellation_reason, created_at`

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
	`

	_, err := r.q.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CustomerID,
		nullString(order.DriverID),
		nullString(order.MerchantID),
		order.ServiceCategoryID,
		order.VehicleTypeID,
		order.PickupAddress,
		order.PickupLatitude,
		order.PickupLongitude,
		order.DestinationAddress,
		order.DestinationLatitude,
		order.DestinationLongitude,
		order.DistanceKm,
		nullInt(order.EstimatedDurationMinutes),
		int64(order.BaseFare),
		int64(order.DistanceFare),
		int64(order.TimeFare),
		int64(order.Subtotal),
		int64(order.DiscountAmount),
		int64(order.TotalAmount),
		int64(order.CommissionAmount),
		order.Status,
		nullString(order.Notes),
		nullTime(order.AcceptedAt),
		nullTime(order.PickedUpAt),
		nullTime(order.DeliveredAt),
		nullTime(order.CompletedAt),
		nullTime(order.CancelledAt),
		nullString(order.CancellationReason),
		order.CreatedAt,
	)

	return err
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrder(r.q.QueryRowContext(ctx, query, id))
}

// GetByOrderNumber retrieves an order by its TRX number.
func (r *OrderRepository) GetByOrderNumber(ctx context.Context, number string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	return r.scanOrder(r.q.QueryRowContext(ctx, query, number))
}

// ListByCustomer retrieves a customer's orders, newest first.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE customer_id = $1 ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := r.scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// Transition applies a conditional status update: the status change and
// its timestamp land in one statement guarded by the expected prior
// status, so two racing transitions cannot both succeed.
func (r *OrderRepository) Transition(ctx context.Context, orderID string, t repository.StatusTransition) error {
	var (
		query string
		args  []any
	)

	switch t.To {
	case domain.OrderStatusAccepted:
		query = `UPDATE orders SET status = $1, accepted_at = $2, driver_id = COALESCE($3, driver_id)
			WHERE id = $4 AND status = $5`
		args = []any{t.To, t.At, nullString(t.DriverID), orderID, t.From}
	case domain.OrderStatusPickedUp:
		query = `UPDATE orders SET status = $1, picked_up_at = $2 WHERE id = $3 AND status = $4`
		args = []any{t.To, t.At, orderID, t.From}
	case domain.OrderStatusInTransit:
		// in_transit carries no timestamp column of its own.
		query = `UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`
		args = []any{t.To, orderID, t.From}
	case domain.OrderStatusDelivered:
		query = `UPDATE orders SET status = $1, delivered_at = $2 WHERE id = $3 AND status = $4`
		args = []any{t.To, t.At, orderID, t.From}
	case domain.OrderStatusCompleted:
		query = `UPDATE orders SET status = $1, completed_at = $2 WHERE id = $3 AND status = $4`
		args = []any{t.To, t.At, orderID, t.From}
	case domain.OrderStatusCancelled:
		query = `UPDATE orders SET status = $1, cancelled_at = $2, cancellation_reason = $3
			WHERE id = $4 AND status = $5`
		args = []any{t.To, t.At, t.CancellationReason, orderID, t.From}
	default:
		return fmt.Errorf("unsupported transition target: %s", t.To)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		// Distinguish a missing order from a lost status race.
		if _, err := r.GetByID(ctx, orderID); err != nil {
			return err
		}
		return repository.ErrStaleStatus
	}

	return nil
}

// Count returns the total number of orders.
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

// CountByStatus returns the number of orders in the given status.
func (r *OrderRepository) CountByStatus(ctx context.Context, status domain.OrderStatus) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *OrderRepository) scanOrder(row *sql.Row) (*domain.Order, error) {
	order, err := scanOrderFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) scanOrderRow(rows *sql.Rows) (*domain.Order, error) {
	return scanOrderFrom(rows)
}

func scanOrderFrom(s rowScanner) (*domain.Order, error) {
	var (
		order              domain.Order
		driverID           sql.NullString
		merchantID         sql.NullString
		duration           sql.NullInt64
		notes              sql.NullString
		baseFare           int64
		distanceFare       int64
		timeFare           int64
		subtotal           int64
		discountAmount     int64
		totalAmount        int64
		commissionAmount   int64
		acceptedAt         sql.NullTime
		pickedUpAt         sql.NullTime
		deliveredAt        sql.NullTime
		completedAt        sql.NullTime
		cancelledAt        sql.NullTime
		cancellationReason sql.NullString
	)

	err := s.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerID,
		&driverID,
		&merchantID,
		&order.ServiceCategoryID,
		&order.VehicleTypeID,
		&order.PickupAddress,
		&order.PickupLatitude,
		&order.PickupLongitude,
		&order.DestinationAddress,
		&order.DestinationLatitude,
		&order.DestinationLongitude,
		&order.DistanceKm,
		&duration,
		&baseFare,
		&distanceFare,
		&timeFare,
		&subtotal,
		&discountAmount,
		&totalAmount,
		&commissionAmount,
		&order.Status,
		&notes,
		&acceptedAt,
		&pickedUpAt,
		&deliveredAt,
		&completedAt,
		&cancelledAt,
		&cancellationReason,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.DriverID = driverID.String
	order.MerchantID = merchantID.String
	order.EstimatedDurationMinutes = int(duration.Int64)
	order.Notes = notes.String
	order.BaseFare = domain.Money(baseFare)
	order.DistanceFare = domain.Money(distanceFare)
	order.TimeFare = domain.Money(timeFare)
	order.Subtotal = domain.Money(subtotal)
	order.DiscountAmount = domain.Money(discountAmount)
	order.TotalAmount = domain.Money(totalAmount)
	order.CommissionAmount = domain.Money(commissionAmount)
	order.AcceptedAt = acceptedAt.Time
	order.PickedUpAt = pickedUpAt.Time
	order.DeliveredAt = deliveredAt.Time
	order.CompletedAt = completedAt.Time
	order.CancelledAt = cancelledAt.Time
	order.CancellationReason = cancellationReason.String

	return &order, nil
}
