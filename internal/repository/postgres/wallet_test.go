package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"marketplace/internal/domain"
	"marketplace/internal/repository"
)

func TestWalletRepository_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)

	txn := &domain.WalletTransaction{
		ID:            "txn-row-1",
		WalletID:      "wallet-1",
		TransactionID: "TXN-ABCDEF123456",
		Type:          domain.TransactionCredit,
		Category:      domain.CategoryTopup,
		Amount:        50000,
		BalanceBefore: 0,
		BalanceAfter:  50000,
		CreatedAt:     time.Now(),
	}

	t.Run("successful append", func(t *testing.T) {
		mock.ExpectBegin()

		mock.ExpectExec("INSERT INTO wallet_transactions").
			WithArgs(txn.ID, txn.WalletID, txn.TransactionID, txn.Type, txn.Category,
				int64(50000), int64(0), int64(50000), nil, nil, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectExec(`UPDATE wallets SET balance = \$1, version = version \+ 1 WHERE id = \$2 AND version = \$3`).
			WithArgs(int64(50000), "wallet-1", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectCommit()

		err := repo.Append(context.Background(), txn, 3)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("version conflict rolls back", func(t *testing.T) {
		mock.ExpectBegin()

		mock.ExpectExec("INSERT INTO wallet_transactions").
			WithArgs(txn.ID, txn.WalletID, txn.TransactionID, txn.Type, txn.Category,
				int64(50000), int64(0), int64(50000), nil, nil, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		// Another append bumped the version first.
		mock.ExpectExec(`UPDATE wallets SET balance = \$1, version = version \+ 1 WHERE id = \$2 AND version = \$3`).
			WithArgs(int64(50000), "wallet-1", 3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectRollback()

		err := repo.Append(context.Background(), txn, 3)
		assert.ErrorIs(t, err, repository.ErrVersionConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWalletRepository_GetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)

	t.Run("found", func(t *testing.T) {
		createdAt := time.Now()
		mock.ExpectQuery("SELECT id, user_id, balance, pending_balance, is_active, version, created_at").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "balance", "pending_balance", "is_active", "version", "created_at",
			}).AddRow("wallet-1", "user-1", int64(30000), int64(0), true, 5, createdAt))

		wallet, err := repo.GetByUserID(context.Background(), "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "wallet-1", wallet.ID)
		assert.Equal(t, domain.Money(30000), wallet.Balance)
		assert.Equal(t, 5, wallet.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, balance, pending_balance, is_active, version, created_at").
			WithArgs("user-missing").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "balance", "pending_balance", "is_active", "version", "created_at",
			}))

		_, err := repo.GetByUserID(context.Background(), "user-missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWalletRepository_ListTransactions(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWalletRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT id, wallet_id, transaction_id, type, category, amount").
		WithArgs("wallet-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "wallet_id", "transaction_id", "type", "category", "amount",
			"balance_before", "balance_after", "reference_type", "reference_id",
			"description", "created_at",
		}).
			AddRow("row-2", "wallet-1", "TXN-2", "debit", "payment", int64(20000),
				int64(50000), int64(30000), "order", "order-1", "trip payment", now).
			AddRow("row-1", "wallet-1", "TXN-1", "credit", "topup", int64(50000),
				int64(0), int64(50000), nil, nil, nil, now.Add(-time.Hour)))

	txns, err := repo.ListTransactions(context.Background(), "wallet-1")
	assert.NoError(t, err)
	assert.Len(t, txns, 2)
	assert.Equal(t, domain.TransactionDebit, txns[0].Type)
	assert.Equal(t, domain.ReferenceOrder, txns[0].Reference.Type)
	assert.Equal(t, "order-1", txns[0].Reference.ID)
	assert.Equal(t, domain.Money(50000), txns[1].Amount)
	assert.Empty(t, txns[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}
