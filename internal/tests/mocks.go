package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/redis"
	"marketplace/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Phone == phone {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK ORDER REPOSITORY
// ──────────────────────────────────────────────

// MockOrderRepository is a mock implementation of OrderRepository. Its
// Transition honors the same conditional-update contract as the SQL
// implementation: the write succeeds only when the order is still in
// the expected prior status.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	// Counters for verification
	CreateCallCount     int32
	TransitionCallCount int32

	// Error injection
	CreateError     error
	TransitionError error
}

// NewMockOrderRepository creates a new mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

// AddOrder adds an order to the mock repository.
func (m *MockOrderRepository) AddOrder(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *order
	m.orders[order.ID] = &copy
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *order
	return &copy, nil
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, number string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.OrderNumber == number {
			copy := *o
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Order, 0)
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			copy := *o
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockOrderRepository) Transition(ctx context.Context, orderID string, t repository.StatusTransition) error {
	atomic.AddInt32(&m.TransitionCallCount, 1)
	if m.TransitionError != nil {
		return m.TransitionError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}
	if order.Status != t.From {
		return repository.ErrStaleStatus
	}
	order.Status = t.To
	switch t.To {
	case domain.OrderStatusAccepted:
		order.AcceptedAt = t.At
		if t.DriverID != "" {
			order.DriverID = t.DriverID
		}
	case domain.OrderStatusPickedUp:
		order.PickedUpAt = t.At
	case domain.OrderStatusDelivered:
		order.DeliveredAt = t.At
	case domain.OrderStatusCompleted:
		order.CompletedAt = t.At
	case domain.OrderStatusCancelled:
		order.CancelledAt = t.At
		order.CancellationReason = t.CancellationReason
	}
	return nil
}

func (m *MockOrderRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders), nil
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status domain.OrderStatus) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, o := range m.orders {
		if o.Status == status {
			count++
		}
	}
	return count, nil
}

// GetOrder returns an order for test assertions.
func (m *MockOrderRepository) GetOrder(id string) *domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id]
}

// ──────────────────────────────────────────────
// MOCK WALLET REPOSITORY
// ──────────────────────────────────────────────

// MockWalletRepository is a mock implementation of WalletRepository.
// Append enforces the same optimistic version check as the SQL
// implementation.
type MockWalletRepository struct {
	mu           sync.RWMutex
	wallets      map[string]*domain.Wallet // keyed by user ID
	transactions map[string][]*domain.WalletTransaction

	// Counters for verification
	AppendCallCount int32

	// Error injection
	AppendError error
}

// NewMockWalletRepository creates a new mock wallet repository.
func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets:      make(map[string]*domain.Wallet),
		transactions: make(map[string][]*domain.WalletTransaction),
	}
}

// AddWallet adds a wallet to the mock repository.
func (m *MockWalletRepository) AddWallet(wallet *domain.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.UserID] = wallet
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, wallet *domain.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[wallet.UserID]; ok {
		return repository.ErrDuplicate
	}
	copy := *wallet
	m.wallets[wallet.UserID] = &copy
	return nil
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wallet, ok := m.wallets[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *wallet
	return &copy, nil
}

func (m *MockWalletRepository) Append(ctx context.Context, txn *domain.WalletTransaction, expectedVersion int) error {
	atomic.AddInt32(&m.AppendCallCount, 1)
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var wallet *domain.Wallet
	for _, w := range m.wallets {
		if w.ID == txn.WalletID {
			wallet = w
			break
		}
	}
	if wallet == nil {
		return repository.ErrNotFound
	}
	if wallet.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	wallet.Balance = txn.BalanceAfter
	wallet.Version++
	copy := *txn
	m.transactions[txn.WalletID] = append(m.transactions[txn.WalletID], &copy)
	return nil
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, walletID string) ([]*domain.WalletTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.transactions[walletID]
	result := make([]*domain.WalletTransaction, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		copy := *rows[i]
		result = append(result, &copy)
	}
	return result, nil
}

// LedgerRows returns a wallet's ledger in append order for assertions.
func (m *MockWalletRepository) LedgerRows(walletID string) []*domain.WalletTransaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.transactions[walletID]
	result := make([]*domain.WalletTransaction, 0, len(rows))
	for _, r := range rows {
		copy := *r
		result = append(result, &copy)
	}
	return result
}

// GetWallet returns a wallet for test assertions.
func (m *MockWalletRepository) GetWallet(userID string) *domain.Wallet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wallets[userID]
}

// ──────────────────────────────────────────────
// MOCK CATALOG REPOSITORY
// ──────────────────────────────────────────────

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mu           sync.RWMutex
	categories   map[string]*domain.ServiceCategory
	vehicleTypes map[string]*domain.VehicleType
}

// NewMockCatalogRepository creates a new mock catalog repository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		categories:   make(map[string]*domain.ServiceCategory),
		vehicleTypes: make(map[string]*domain.VehicleType),
	}
}

// AddCategory adds a service category to the mock repository.
func (m *MockCatalogRepository) AddCategory(cat *domain.ServiceCategory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[cat.ID] = cat
}

// AddVehicleType adds a vehicle type to the mock repository.
func (m *MockCatalogRepository) AddVehicleType(vt *domain.VehicleType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicleTypes[vt.ID] = vt
}

func (m *MockCatalogRepository) GetCategory(ctx context.Context, id string) (*domain.ServiceCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cat, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *cat
	return &copy, nil
}

func (m *MockCatalogRepository) ListActiveCategories(ctx context.Context) ([]*domain.ServiceCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.ServiceCategory, 0, len(m.categories))
	for _, c := range m.categories {
		if c.IsActive {
			copy := *c
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockCatalogRepository) GetVehicleType(ctx context.Context, id string) (*domain.VehicleType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vt, ok := m.vehicleTypes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vt
	return &copy, nil
}

func (m *MockCatalogRepository) ListActiveVehicleTypes(ctx context.Context) ([]*domain.VehicleType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.VehicleType, 0, len(m.vehicleTypes))
	for _, vt := range m.vehicleTypes {
		if vt.IsActive {
			copy := *vt
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockCatalogRepository) CountActiveCategories(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, c := range m.categories {
		if c.IsActive {
			count++
		}
	}
	return count, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireWalletLock(ctx context.Context, walletID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[walletID] {
		return false, nil
	}
	m.locks[walletID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseWalletLock(ctx context.Context, walletID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, walletID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK PRESENCE STORE
// ──────────────────────────────────────────────

// MockPresenceStore is a mock implementation of PresenceStoreInterface.
type MockPresenceStore struct {
	mu     sync.RWMutex
	online map[string]bool
}

// NewMockPresenceStore creates a new mock presence store.
func NewMockPresenceStore() *MockPresenceStore {
	return &MockPresenceStore{
		online: make(map[string]bool),
	}
}

func (m *MockPresenceStore) SetOnline(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online[driverID] = true
	return nil
}

func (m *MockPresenceStore) SetOffline(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.online, driverID)
	return nil
}

func (m *MockPresenceStore) IsOnline(ctx context.Context, driverID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online[driverID], nil
}

func (m *MockPresenceStore) CountOnline(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.online), nil
}

// Ensure mocks satisfy the interfaces they stand in for.
var (
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.OrderRepository   = (*MockOrderRepository)(nil)
	_ repository.WalletRepository  = (*MockWalletRepository)(nil)
	_ repository.CatalogRepository = (*MockCatalogRepository)(nil)
	_ redis.LockStoreInterface     = (*MockLockStore)(nil)
	_ redis.PresenceStoreInterface = (*MockPresenceStore)(nil)
)
