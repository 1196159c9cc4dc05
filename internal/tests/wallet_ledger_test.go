package tests

import (
	"context"
	"strings"
	"sync"
	"testing"

	"marketplace/internal/domain"
	"marketplace/internal/service"
)

// ──────────────────────────────────────────────
// WALLET LEDGER INVARIANTS
// ──────────────────────────────────────────────

func newWalletEnv(balance domain.Money) (*MockWalletRepository, *service.WalletService) {
	walletRepo := NewMockWalletRepository()
	walletRepo.AddWallet(&domain.Wallet{
		ID:       "wallet-1",
		UserID:   "user-1",
		Balance:  balance,
		IsActive: true,
	})
	return walletRepo, service.NewWalletService(walletRepo, nil, nil)
}

func TestWallet_CreditThenDebit(t *testing.T) {
	t.Parallel()

	walletRepo, walletService := newWalletEnv(0)
	ctx := context.Background()

	credit, err := walletService.Record(ctx, service.RecordRequest{
		UserID:   "user-1",
		Type:     domain.TransactionCredit,
		Category: domain.CategoryTopup,
		Amount:   50000,
	})
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if credit.BalanceBefore != 0 || credit.BalanceAfter != 50000 {
		t.Errorf("credit row balances = %v/%v, want 0/50000", credit.BalanceBefore, credit.BalanceAfter)
	}
	if !strings.HasPrefix(credit.TransactionID, "TXN-") {
		t.Errorf("expected TXN- transaction ID, got %s", credit.TransactionID)
	}

	debit, err := walletService.Record(ctx, service.RecordRequest{
		UserID:   "user-1",
		Type:     domain.TransactionDebit,
		Category: domain.CategoryPayment,
		Amount:   20000,
	})
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if debit.BalanceBefore != 50000 || debit.BalanceAfter != 30000 {
		t.Errorf("debit row balances = %v/%v, want 50000/30000", debit.BalanceBefore, debit.BalanceAfter)
	}

	balance, err := walletService.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 30000 {
		t.Errorf("balance = %v, want 30000", balance)
	}

	if rows := walletRepo.LedgerRows("wallet-1"); len(rows) != 2 {
		t.Errorf("expected 2 ledger rows, got %d", len(rows))
	}
}

func TestWallet_DebitCannotOverdraw(t *testing.T) {
	t.Parallel()

	walletRepo, walletService := newWalletEnv(10000)

	_, err := walletService.Record(context.Background(), service.RecordRequest{
		UserID:   "user-1",
		Type:     domain.TransactionDebit,
		Category: domain.CategoryWithdraw,
		Amount:   10001,
	})
	if err != service.ErrInsufficientFunds {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}

	// A rejected debit appends nothing.
	if rows := walletRepo.LedgerRows("wallet-1"); len(rows) != 0 {
		t.Errorf("expected no ledger rows, got %d", len(rows))
	}
	if wallet := walletRepo.GetWallet("user-1"); wallet.Balance != 10000 {
		t.Errorf("balance = %v, want untouched 10000", wallet.Balance)
	}
}

func TestWallet_DebitToExactlyZeroSucceeds(t *testing.T) {
	t.Parallel()

	_, walletService := newWalletEnv(10000)

	txn, err := walletService.Record(context.Background(), service.RecordRequest{
		UserID:   "user-1",
		Type:     domain.TransactionDebit,
		Category: domain.CategoryWithdraw,
		Amount:   10000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.BalanceAfter != 0 {
		t.Errorf("BalanceAfter = %v, want 0", txn.BalanceAfter)
	}
}

func TestWallet_RejectsInvalidRequests(t *testing.T) {
	t.Parallel()

	_, walletService := newWalletEnv(10000)
	ctx := context.Background()

	cases := []struct {
		name string
		req  service.RecordRequest
		want error
	}{
		{
			"missing user",
			service.RecordRequest{Type: domain.TransactionCredit, Category: domain.CategoryTopup, Amount: 100},
			service.ErrInvalidUserID,
		},
		{
			"unknown type",
			service.RecordRequest{UserID: "user-1", Type: "transfer", Category: domain.CategoryTopup, Amount: 100},
			service.ErrInvalidTransactionType,
		},
		{
			"unknown category",
			service.RecordRequest{UserID: "user-1", Type: domain.TransactionCredit, Category: "gift", Amount: 100},
			service.ErrInvalidTransactionCategory,
		},
		{
			"zero amount",
			service.RecordRequest{UserID: "user-1", Type: domain.TransactionCredit, Category: domain.CategoryTopup, Amount: 0},
			service.ErrInvalidAmount,
		},
		{
			"negative amount",
			service.RecordRequest{UserID: "user-1", Type: domain.TransactionCredit, Category: domain.CategoryTopup, Amount: -5},
			service.ErrInvalidAmount,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := walletService.Record(ctx, tc.req); err != tc.want {
				t.Errorf("Record() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestWallet_InactiveWalletRejectsWrites(t *testing.T) {
	t.Parallel()

	walletRepo := NewMockWalletRepository()
	walletRepo.AddWallet(&domain.Wallet{
		ID:       "wallet-1",
		UserID:   "user-1",
		Balance:  10000,
		IsActive: false,
	})
	walletService := service.NewWalletService(walletRepo, nil, nil)

	_, err := walletService.Record(context.Background(), service.RecordRequest{
		UserID:   "user-1",
		Type:     domain.TransactionCredit,
		Category: domain.CategoryTopup,
		Amount:   100,
	})
	if err != service.ErrWalletInactive {
		t.Errorf("expected ErrWalletInactive, got %v", err)
	}
}

func TestWallet_HeldLockRejectsWrite(t *testing.T) {
	t.Parallel()

	walletRepo := NewMockWalletRepository()
	walletRepo.AddWallet(&domain.Wallet{
		ID:       "wallet-1",
		UserID:   "user-1",
		Balance:  10000,
		IsActive: true,
	})
	lockStore := NewMockLockStore()
	walletService := service.NewWalletService(walletRepo, lockStore, nil)

	// Another process holds the wallet lock.
	if ok, _ := lockStore.AcquireWalletLock(context.Background(), "wallet-1", 0); !ok {
		t.Fatal("failed to pre-acquire lock")
	}

	_, err := walletService.Record(context.Background(), service.RecordRequest{
		UserID:   "user-1",
		Type:     domain.TransactionCredit,
		Category: domain.CategoryTopup,
		Amount:   100,
	})
	if err != service.ErrWalletBusy {
		t.Errorf("expected ErrWalletBusy, got %v", err)
	}
}

func TestWallet_ReplayReproducesBalance(t *testing.T) {
	t.Parallel()

	walletRepo, walletService := newWalletEnv(0)
	ctx := context.Background()

	ops := []struct {
		typ    domain.TransactionType
		amount domain.Money
	}{
		{domain.TransactionCredit, 50000},
		{domain.TransactionDebit, 12500},
		{domain.TransactionCredit, 3000},
		{domain.TransactionDebit, 40000},
		{domain.TransactionCredit, 750},
	}

	for _, op := range ops {
		category := domain.CategoryTopup
		if op.typ == domain.TransactionDebit {
			category = domain.CategoryPayment
		}
		if _, err := walletService.Record(ctx, service.RecordRequest{
			UserID:   "user-1",
			Type:     op.typ,
			Category: category,
			Amount:   op.amount,
		}); err != nil {
			t.Fatalf("record %s %v: %v", op.typ, op.amount, err)
		}
	}

	// Replay the ledger in append order.
	var replayed domain.Money
	for i, row := range walletRepo.LedgerRows("wallet-1") {
		if row.BalanceBefore != replayed {
			t.Errorf("row %d: BalanceBefore = %v, want %v", i, row.BalanceBefore, replayed)
		}
		if row.Type == domain.TransactionCredit {
			replayed += row.Amount
		} else {
			replayed -= row.Amount
		}
		if row.BalanceAfter != replayed {
			t.Errorf("row %d: BalanceAfter = %v, want %v", i, row.BalanceAfter, replayed)
		}
	}

	wallet := walletRepo.GetWallet("user-1")
	if wallet.Balance != replayed {
		t.Errorf("wallet balance %v != replayed balance %v", wallet.Balance, replayed)
	}
	if replayed != 1250 {
		t.Errorf("replayed balance = %v, want 1250", replayed)
	}
}

func TestWallet_ConcurrentRecordsSerialize(t *testing.T) {
	t.Parallel()

	walletRepo, walletService := newWalletEnv(0)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := walletService.Record(ctx, service.RecordRequest{
				UserID:   "user-1",
				Type:     domain.TransactionCredit,
				Category: domain.CategoryTopup,
				Amount:   1000,
			})
			if err != nil {
				t.Errorf("concurrent record: %v", err)
			}
		}()
	}
	wg.Wait()

	wallet := walletRepo.GetWallet("user-1")
	if wallet.Balance != writers*1000 {
		t.Errorf("balance = %v, want %v", wallet.Balance, writers*1000)
	}

	rows := walletRepo.LedgerRows("wallet-1")
	if len(rows) != writers {
		t.Fatalf("expected %d ledger rows, got %d", writers, len(rows))
	}

	// The chain of balances must be gapless regardless of arrival order.
	var running domain.Money
	for i, row := range rows {
		if row.BalanceBefore != running {
			t.Errorf("row %d: BalanceBefore = %v, want %v", i, row.BalanceBefore, running)
		}
		running = row.BalanceAfter
	}
}

func TestWallet_HistoryNewestFirst(t *testing.T) {
	t.Parallel()

	_, walletService := newWalletEnv(0)
	ctx := context.Background()

	for _, amount := range []domain.Money{100, 200, 300} {
		if _, err := walletService.Record(ctx, service.RecordRequest{
			UserID:   "user-1",
			Type:     domain.TransactionCredit,
			Category: domain.CategoryTopup,
			Amount:   amount,
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	history, err := walletService.History(ctx, "user-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(history))
	}
	if history[0].Amount != 300 || history[2].Amount != 100 {
		t.Errorf("expected newest first ordering, got %v then %v", history[0].Amount, history[2].Amount)
	}
}

func TestWallet_RecordWithNotifier(t *testing.T) {
	t.Parallel()

	walletRepo := NewMockWalletRepository()
	walletRepo.AddWallet(&domain.Wallet{
		ID:       "wallet-1",
		UserID:   "user-1",
		Balance:  0,
		IsActive: true,
	})
	walletService := service.NewWalletService(walletRepo, nil, service.NewNotificationService())

	txn, err := walletService.Record(context.Background(), service.RecordRequest{
		UserID:   "user-1",
		Type:     domain.TransactionCredit,
		Category: domain.CategoryTopup,
		Amount:   10000,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if txn.BalanceAfter != 10000 {
		t.Errorf("balance after = %v, want 10000", txn.BalanceAfter)
	}
}
