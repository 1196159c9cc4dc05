package postgres

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/domain"
	"marketplace/internal/repository"
)

// WalletRepository is a PostgreSQL implementation of repository.WalletRepository.
type WalletRepository struct {
	q  Querier
	db *sql.DB
}

// NewWalletRepository creates a new PostgreSQL wallet repository.
func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{q: db, db: db}
}

// NewWalletRepositoryWithTx creates a wallet repository using a transaction.
func NewWalletRepositoryWithTx(tx *sql.Tx) *WalletRepository {
	return &WalletRepository{q: tx}
}

// CreateWallet persists a new wallet.
func (r *WalletRepository) CreateWallet(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (id, user_id, balance, pending_balance, is_active, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		wallet.ID,
		wallet.UserID,
		int64(wallet.Balance),
		int64(wallet.PendingBalance),
		wallet.IsActive,
		wallet.Version,
		wallet.CreatedAt,
	)

	return err
}

// GetByUserID retrieves the wallet owned by the given user.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `
		SELECT id, user_id, balance, pending_balance, is_active, version, created_at
		FROM wallets WHERE user_id = $1
	`

	var (
		wallet  domain.Wallet
		balance int64
		pending int64
	)

	err := r.q.QueryRowContext(ctx, query, userID).Scan(
		&wallet.ID,
		&wallet.UserID,
		&balance,
		&pending,
		&wallet.IsActive,
		&wallet.Version,
		&wallet.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	wallet.Balance = domain.Money(balance)
	wallet.PendingBalance = domain.Money(pending)
	return &wallet, nil
}

// Append atomically inserts a ledger row and moves the wallet balance
// to txn.BalanceAfter. The two writes share a transaction; the balance
// update is guarded by the expected wallet version.
func (r *WalletRepository) Append(ctx context.Context, txn *domain.WalletTransaction, expectedVersion int) error {
	if r.db == nil {
		return r.appendIn(ctx, r.q, txn, expectedVersion)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := r.appendIn(ctx, tx, txn, expectedVersion); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *WalletRepository) appendIn(ctx context.Context, q Querier, txn *domain.WalletTransaction, expectedVersion int) error {
	insert := `
		INSERT INTO wallet_transactions (id, wallet_id, transaction_id, type, category,
			amount, balance_before, balance_after, reference_type, reference_id,
			description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.ExecContext(ctx, insert,
		txn.ID,
		txn.WalletID,
		txn.TransactionID,
		txn.Type,
		txn.Category,
		int64(txn.Amount),
		int64(txn.BalanceBefore),
		int64(txn.BalanceAfter),
		nullString(string(txn.Reference.Type)),
		nullString(txn.Reference.ID),
		nullString(txn.Description),
		txn.CreatedAt,
	)
	if err != nil {
		return err
	}

	update := `
		UPDATE wallets SET balance = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`

	result, err := q.ExecContext(ctx, update, int64(txn.BalanceAfter), txn.WalletID, expectedVersion)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return repository.ErrVersionConflict
	}

	return nil
}

// ListTransactions retrieves a wallet's ledger rows, newest first.
func (r *WalletRepository) ListTransactions(ctx context.Context, walletID string) ([]*domain.WalletTransaction, error) {
	query := `
		SELECT id, wallet_id, transaction_id, type, category, amount,
			balance_before, balance_after, reference_type, reference_id,
			description, created_at
		FROM wallet_transactions WHERE wallet_id = $1
		ORDER BY created_at DESC LIMIT 100
	`

	rows, err := r.q.QueryContext(ctx, query, walletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.WalletTransaction
	for rows.Next() {
		var (
			txn           domain.WalletTransaction
			amount        int64
			balanceBefore int64
			balanceAfter  int64
			refType       sql.NullString
			refID         sql.NullString
			description   sql.NullString
		)
		if err := rows.Scan(
			&txn.ID,
			&txn.WalletID,
			&txn.TransactionID,
			&txn.Type,
			&txn.Category,
			&amount,
			&balanceBefore,
			&balanceAfter,
			&refType,
			&refID,
			&description,
			&txn.CreatedAt,
		); err != nil {
			return nil, err
		}
		txn.Amount = domain.Money(amount)
		txn.BalanceBefore = domain.Money(balanceBefore)
		txn.BalanceAfter = domain.Money(balanceAfter)
		txn.Reference = domain.TransactionReference{
			Type: domain.ReferenceType(refType.String),
			ID:   refID.String,
		}
		txn.Description = description.String
		txns = append(txns, &txn)
	}
	return txns, rows.Err()
}
