package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/domain"
	internalredis "marketplace/internal/redis"
	"marketplace/internal/repository"
)

const walletLockTTL = 5 * time.Second

// WalletService maintains the append-only transaction ledger and the
// derived wallet balances. The read-compute-append sequence for one
// wallet is serialized three ways: an in-process keyed mutex, an
// optional Redis lock across processes, and the optimistic version
// check on the balance write.
type WalletService struct {
	walletRepo repository.WalletRepository
	lockStore  internalredis.LockStoreInterface
	notifier   *NotificationService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWalletService creates a new WalletService. The lock store and
// notifier may be nil.
func NewWalletService(walletRepo repository.WalletRepository, lockStore internalredis.LockStoreInterface, notifier *NotificationService) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		lockStore:  lockStore,
		notifier:   notifier,
		locks:      make(map[string]*sync.Mutex),
	}
}

// RecordRequest contains the parameters for appending a ledger entry.
type RecordRequest struct {
	UserID      string
	Type        domain.TransactionType
	Category    domain.TransactionCategory
	Amount      domain.Money
	Reference   domain.TransactionReference
	Description string
}

// Record validates the request, serializes on the wallet and appends an
// immutable ledger row, moving the balance with it. A debit that would
// drive the balance negative fails with ErrInsufficientFunds. Once
// created a row is never updated or deleted; corrections are
// compensating refund entries.
func (s *WalletService) Record(ctx context.Context, req RecordRequest) (*domain.WalletTransaction, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if !domain.ValidTransactionType(req.Type) {
		return nil, ErrInvalidTransactionType
	}
	if !domain.ValidTransactionCategory(req.Category) {
		return nil, ErrInvalidTransactionCategory
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	unlock := s.lockWallet(req.UserID)
	defer unlock()

	wallet, err := s.walletRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if !wallet.IsActive {
		return nil, ErrWalletInactive
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireWalletLock(ctx, wallet.ID, walletLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrWalletBusy
		}
		defer func() {
			_ = s.lockStore.ReleaseWalletLock(ctx, wallet.ID)
		}()
	}

	balanceBefore := wallet.Balance
	var balanceAfter domain.Money
	if req.Type == domain.TransactionCredit {
		balanceAfter = balanceBefore + req.Amount
	} else {
		balanceAfter = balanceBefore - req.Amount
		if balanceAfter < 0 {
			return nil, ErrInsufficientFunds
		}
	}

	txn := &domain.WalletTransaction{
		ID:            uuid.New().String(),
		WalletID:      wallet.ID,
		TransactionID: NewTransactionID(),
		Type:          req.Type,
		Category:      req.Category,
		Amount:        req.Amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Reference:     req.Reference,
		Description:   req.Description,
		CreatedAt:     time.Now(),
	}

	if err := s.walletRepo.Append(ctx, txn, wallet.Version); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyWalletTransaction(ctx, req.UserID, txn)
	}

	return txn, nil
}

// Balance returns the current balance of a user's wallet.
func (s *WalletService) Balance(ctx context.Context, userID string) (domain.Money, error) {
	if userID == "" {
		return 0, ErrInvalidUserID
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// GetWallet retrieves a user's wallet.
func (s *WalletService) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.walletRepo.GetByUserID(ctx, userID)
}

// History retrieves a user's ledger rows, newest first.
func (s *WalletService) History(ctx context.Context, userID string) ([]*domain.WalletTransaction, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.walletRepo.ListTransactions(ctx, wallet.ID)
}

// CreateWallet creates a zero-balance wallet for a user.
func (s *WalletService) CreateWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	wallet := &domain.Wallet{
		ID:        uuid.New().String(),
		UserID:    userID,
		Balance:   0,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := s.walletRepo.CreateWallet(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// lockWallet serializes ledger appends per user within this process.
// The mutex map keeps one entry per user ever written and is never
// evicted; its size is bounded by the user population.
func (s *WalletService) lockWallet(userID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// NewTransactionID generates a unique ledger transaction identifier.
func NewTransactionID() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "TXN-" + token[:12]
}
