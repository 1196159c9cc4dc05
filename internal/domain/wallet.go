package domain

import "time"

// TransactionType encodes the direction of a ledger entry. The amount
// itself is always positive; direction is carried by the type.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// ValidTransactionType reports whether t is a known direction.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionCredit || t == TransactionDebit
}

// TransactionCategory classifies the business reason for a ledger entry.
type TransactionCategory string

const (
	CategoryTopup      TransactionCategory = "topup"
	CategoryWithdraw   TransactionCategory = "withdraw"
	CategoryPayment    TransactionCategory = "payment"
	CategoryCommission TransactionCategory = "commission"
	CategoryRefund     TransactionCategory = "refund"
	CategoryBonus      TransactionCategory = "bonus"
)

// ValidTransactionCategory reports whether c is a known category.
func ValidTransactionCategory(c TransactionCategory) bool {
	switch c {
	case CategoryTopup, CategoryWithdraw, CategoryPayment,
		CategoryCommission, CategoryRefund, CategoryBonus:
		return true
	}
	return false
}

// ReferenceType names the kind of entity a ledger entry points at.
type ReferenceType string

const (
	ReferenceOrder     ReferenceType = "order"
	ReferencePromotion ReferenceType = "promotion"
)

// TransactionReference ties a ledger entry to the entity that caused it.
// The zero value means the entry stands alone (e.g. a plain topup).
type TransactionReference struct {
	Type ReferenceType
	ID   string
}

// IsZero reports whether no reference is set.
func (r TransactionReference) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

// Wallet holds a user's balance. It is mutated exclusively by appending
// a WalletTransaction; Version backs the optimistic check on the
// balance write.
type Wallet struct {
	ID             string
	UserID         string
	Balance        Money
	PendingBalance Money
	IsActive       bool
	Version        int
	CreatedAt      time.Time
}

// WalletTransaction is one immutable, append-only ledger row. Replaying
// a wallet's rows in creation order must reproduce its current balance.
type WalletTransaction struct {
	ID            string
	WalletID      string
	TransactionID string
	Type          TransactionType
	Category      TransactionCategory
	Amount        Money
	BalanceBefore Money
	BalanceAfter  Money
	Reference     TransactionReference
	Description   string
	CreatedAt     time.Time
}
