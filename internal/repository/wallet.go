package repository

import (
	"context"

	"marketplace/internal/domain"
)

// WalletRepository defines the persistence operations for wallets and
// their append-only transaction ledger.
type WalletRepository interface {
	// CreateWallet persists a new wallet.
	CreateWallet(ctx context.Context, wallet *domain.Wallet) error

	// GetByUserID retrieves the wallet owned by the given user.
	GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error)

	// Append atomically inserts a ledger row and moves the wallet
	// balance to txn.BalanceAfter. The balance write is guarded by the
	// expected wallet version; ErrVersionConflict is returned when
	// another append won the race.
	Append(ctx context.Context, txn *domain.WalletTransaction, expectedVersion int) error

	// ListTransactions retrieves a wallet's ledger rows, newest first.
	ListTransactions(ctx context.Context, walletID string) ([]*domain.WalletTransaction, error)
}
