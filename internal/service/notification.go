package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"marketplace/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationOrderCreated       NotificationType = "ORDER_CREATED"
	NotificationOrderStatusChanged NotificationType = "ORDER_STATUS_CHANGED"
	NotificationOrderCancelled     NotificationType = "ORDER_CANCELLED"
	NotificationWalletTransaction  NotificationType = "WALLET_TRANSACTION"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery. Actual delivery
// channels (push, SMS, email) live outside this core; entries are
// logged for the surrounding platform to pick up.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyOrderCreated notifies the customer that their order was placed.
func (s *NotificationService) NotifyOrderCreated(ctx context.Context, order *domain.Order) error {
	return s.send(ctx, Notification{
		Type:        NotificationOrderCreated,
		RecipientID: order.CustomerID,
		Title:       "Order Placed",
		Message:     fmt.Sprintf("Order %s created. Looking for available drivers...", order.OrderNumber),
		Data: map[string]interface{}{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount.String(),
		},
		CreatedAt: time.Now(),
	})
}

// NotifyOrderStatusChanged notifies the customer of a lifecycle step.
func (s *NotificationService) NotifyOrderStatusChanged(ctx context.Context, order *domain.Order, from, to domain.OrderStatus) error {
	return s.send(ctx, Notification{
		Type:        NotificationOrderStatusChanged,
		RecipientID: order.CustomerID,
		Title:       "Order Update",
		Message:     fmt.Sprintf("Order %s is now %s", order.OrderNumber, to),
		Data: map[string]interface{}{
			"order_id": order.ID,
			"from":     string(from),
			"to":       string(to),
		},
		CreatedAt: time.Now(),
	})
}

// NotifyOrderCancelled notifies the affected parties of a cancellation.
func (s *NotificationService) NotifyOrderCancelled(ctx context.Context, order *domain.Order, reason string) error {
	recipientID := order.CustomerID
	if order.DriverID != "" {
		recipientID = order.DriverID
	}

	return s.send(ctx, Notification{
		Type:        NotificationOrderCancelled,
		RecipientID: recipientID,
		Title:       "Order Cancelled",
		Message:     fmt.Sprintf("Order %s was cancelled: %s", order.OrderNumber, reason),
		Data: map[string]interface{}{
			"order_id": order.ID,
			"reason":   reason,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyWalletTransaction notifies a user of a ledger entry on their wallet.
func (s *NotificationService) NotifyWalletTransaction(ctx context.Context, userID string, txn *domain.WalletTransaction) error {
	return s.send(ctx, Notification{
		Type:        NotificationWalletTransaction,
		RecipientID: userID,
		Title:       "Wallet Update",
		Message:     fmt.Sprintf("%s of %s (%s). New balance: %s", txn.Type, txn.Amount, txn.Category, txn.BalanceAfter),
		Data: map[string]interface{}{
			"transaction_id": txn.TransactionID,
			"type":           string(txn.Type),
			"category":       string(txn.Category),
		},
		CreatedAt: time.Now(),
	})
}

// send delivers a notification (log-backed).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)
	return nil
}
