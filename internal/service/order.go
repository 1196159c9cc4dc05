package service

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"marketplace/internal/domain"
	"marketplace/internal/repository"
)

// Field limits are counted in characters, not bytes.
const (
	maxAddressLength            = 255
	maxNotesLength              = 500
	maxCancellationReasonLength = 255
)

// forwardTransitions maps each status to the only legal next status on
// the forward path. Terminal statuses have no entry.
var forwardTransitions = map[domain.OrderStatus]domain.OrderStatus{
	domain.OrderStatusPending:   domain.OrderStatusAccepted,
	domain.OrderStatusAccepted:  domain.OrderStatusPickedUp,
	domain.OrderStatusPickedUp:  domain.OrderStatusInTransit,
	domain.OrderStatusInTransit: domain.OrderStatusDelivered,
	domain.OrderStatusDelivered: domain.OrderStatusCompleted,
}

// OrderService handles order creation and the status lifecycle.
type OrderService struct {
	orderRepo      repository.OrderRepository
	userRepo       repository.UserRepository
	pricingService *PricingService
	walletService  *WalletService
	notifier       *NotificationService
	platformUserID string
}

// NewOrderService creates a new OrderService. platformUserID owns the
// wallet that receives commission on completed orders.
func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	pricingService *PricingService,
	walletService *WalletService,
	notifier *NotificationService,
	platformUserID string,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		pricingService: pricingService,
		walletService:  walletService,
		notifier:       notifier,
		platformUserID: platformUserID,
	}
}

// CreateOrderRequest contains the parameters for creating an order.
type CreateOrderRequest struct {
	CustomerID               string
	ServiceCategoryID        string
	VehicleTypeID            string
	PickupAddress            string
	PickupLat                float64
	PickupLng                float64
	DestinationAddress       string
	DestinationLat           float64
	DestinationLng           float64
	Notes                    string
	EstimatedDurationMinutes int
}

// CreateOrder quotes the fare and persists a new order in pending
// status. The quote is binding: the persisted totals are never
// recomputed afterwards.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidUserID
	}
	if err := validateAddress(req.PickupAddress); err != nil {
		return nil, err
	}
	if err := validateAddress(req.DestinationAddress); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(req.Notes) > maxNotesLength {
		return nil, ErrNotesTooLong
	}

	if _, err := s.userRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	breakdown, err := s.pricingService.QuoteFare(ctx, QuoteRequest{
		ServiceCategoryID: req.ServiceCategoryID,
		VehicleTypeID:     req.VehicleTypeID,
		PickupLat:         req.PickupLat,
		PickupLng:         req.PickupLng,
		DestinationLat:    req.DestinationLat,
		DestinationLng:    req.DestinationLng,
	})
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:                       uuid.New().String(),
		OrderNumber:              NewOrderNumber(),
		CustomerID:               req.CustomerID,
		ServiceCategoryID:        req.ServiceCategoryID,
		VehicleTypeID:            req.VehicleTypeID,
		PickupAddress:            req.PickupAddress,
		PickupLatitude:           req.PickupLat,
		PickupLongitude:          req.PickupLng,
		DestinationAddress:       req.DestinationAddress,
		DestinationLatitude:      req.DestinationLat,
		DestinationLongitude:     req.DestinationLng,
		DistanceKm:               breakdown.DistanceKm,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		BaseFare:                 breakdown.BaseFare,
		DistanceFare:             breakdown.DistanceFare,
		TimeFare:                 breakdown.TimeFare,
		Subtotal:                 breakdown.Subtotal,
		TotalAmount:              breakdown.TotalAmount,
		CommissionAmount:         breakdown.CommissionAmount,
		Status:                   domain.OrderStatusPending,
		Notes:                    req.Notes,
		CreatedAt:                time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyOrderCreated(ctx, order)
	}

	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// GetOrderByNumber retrieves an order by its TRX number.
func (s *OrderService) GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	if number == "" {
		return nil, ErrInvalidOrderID
	}
	return s.orderRepo.GetByOrderNumber(ctx, number)
}

// ListOrdersByCustomer retrieves a customer's orders, newest first.
func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	if customerID == "" {
		return nil, ErrInvalidUserID
	}
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

// CancelOrderRequest contains the parameters for cancelling an order.
type CancelOrderRequest struct {
	OrderID string
	Reason  string
}

// CancelOrder cancels an order. Cancellation is legal only from
// pending; on failure the order is left untouched.
func (s *OrderService) CancelOrder(ctx context.Context, req CancelOrderRequest) (*domain.Order, error) {
	if req.OrderID == "" {
		return nil, ErrInvalidOrderID
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrCancellationReasonRequired
	}
	if utf8.RuneCountInString(reason) > maxCancellationReasonLength {
		return nil, ErrCancellationReasonTooLong
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusPending {
		return nil, ErrIllegalTransition
	}

	now := time.Now()
	err = s.orderRepo.Transition(ctx, order.ID, repository.StatusTransition{
		From:               domain.OrderStatusPending,
		To:                 domain.OrderStatusCancelled,
		At:                 now,
		CancellationReason: reason,
	})
	if err != nil {
		if err == repository.ErrStaleStatus {
			return nil, ErrIllegalTransition
		}
		return nil, err
	}

	order.Status = domain.OrderStatusCancelled
	order.CancelledAt = now
	order.CancellationReason = reason

	if s.notifier != nil {
		_ = s.notifier.NotifyOrderCancelled(ctx, order, reason)
	}

	return order, nil
}

// AdvanceOrderRequest contains the parameters for a forward transition.
type AdvanceOrderRequest struct {
	OrderID    string
	NextStatus domain.OrderStatus

	// DriverID may accompany the transition into accepted; it is
	// stored on the order.
	DriverID string
}

// AdvanceOrder moves an order exactly one step along the forward path.
// The status write and its timestamp are atomic; two racing requests
// from the same prior status cannot both succeed. Reaching completed
// triggers commission settlement.
func (s *OrderService) AdvanceOrder(ctx context.Context, req AdvanceOrderRequest) (*domain.Order, error) {
	if req.OrderID == "" {
		return nil, ErrInvalidOrderID
	}
	if !domain.ValidOrderStatus(req.NextStatus) {
		return nil, ErrIllegalTransition
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	next, ok := forwardTransitions[order.Status]
	if !ok || next != req.NextStatus {
		return nil, ErrIllegalTransition
	}

	now := time.Now()
	transition := repository.StatusTransition{
		From: order.Status,
		To:   next,
		At:   now,
	}
	if next == domain.OrderStatusAccepted {
		transition.DriverID = req.DriverID
	}

	if err := s.orderRepo.Transition(ctx, order.ID, transition); err != nil {
		if err == repository.ErrStaleStatus {
			return nil, ErrIllegalTransition
		}
		return nil, err
	}

	previous := order.Status
	order.Status = next
	switch next {
	case domain.OrderStatusAccepted:
		order.AcceptedAt = now
		if req.DriverID != "" {
			order.DriverID = req.DriverID
		}
	case domain.OrderStatusPickedUp:
		order.PickedUpAt = now
	case domain.OrderStatusDelivered:
		order.DeliveredAt = now
	case domain.OrderStatusCompleted:
		order.CompletedAt = now
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyOrderStatusChanged(ctx, order, previous, next)
	}

	// Settlement runs after the lifecycle write commits; a failed
	// settlement does not roll the order back and can be replayed by
	// an operator from the order's commission fields.
	if next == domain.OrderStatusCompleted {
		s.settleCommission(ctx, order)
	}

	return order, nil
}

// settleCommission moves the order's commission from the driver's
// wallet to the platform wallet as two commission-category ledger
// entries referencing the order.
func (s *OrderService) settleCommission(ctx context.Context, order *domain.Order) {
	if s.walletService == nil || order.CommissionAmount <= 0 {
		return
	}
	if order.DriverID == "" {
		log.Printf("order %s completed without driver, skipping commission settlement", order.OrderNumber)
		return
	}
	if s.platformUserID == "" {
		log.Printf("order %s completed without platform wallet configured, skipping commission settlement", order.OrderNumber)
		return
	}

	reference := domain.TransactionReference{
		Type: domain.ReferenceOrder,
		ID:   order.ID,
	}

	_, err := s.walletService.Record(ctx, RecordRequest{
		UserID:      order.DriverID,
		Type:        domain.TransactionDebit,
		Category:    domain.CategoryCommission,
		Amount:      order.CommissionAmount,
		Reference:   reference,
		Description: "platform commission for order " + order.OrderNumber,
	})
	if err != nil {
		log.Printf("commission debit failed for order %s: %v", order.OrderNumber, err)
		return
	}

	_, err = s.walletService.Record(ctx, RecordRequest{
		UserID:      s.platformUserID,
		Type:        domain.TransactionCredit,
		Category:    domain.CategoryCommission,
		Amount:      order.CommissionAmount,
		Reference:   reference,
		Description: "platform commission for order " + order.OrderNumber,
	})
	if err != nil {
		// Compensate the driver rather than mutate ledger history.
		log.Printf("commission credit failed for order %s: %v", order.OrderNumber, err)
		_, refundErr := s.walletService.Record(ctx, RecordRequest{
			UserID:      order.DriverID,
			Type:        domain.TransactionCredit,
			Category:    domain.CategoryRefund,
			Amount:      order.CommissionAmount,
			Reference:   reference,
			Description: "commission reversal for order " + order.OrderNumber,
		})
		if refundErr != nil {
			log.Printf("commission reversal failed for order %s: %v", order.OrderNumber, refundErr)
		}
	}
}

func validateAddress(address string) error {
	if strings.TrimSpace(address) == "" || utf8.RuneCountInString(address) > maxAddressLength {
		return ErrInvalidAddress
	}
	return nil
}

// NewOrderNumber generates a unique order number in the TRX-<token>
// format.
func NewOrderNumber() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "TRX-" + token[:12]
}
