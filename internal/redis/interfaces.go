package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireWalletLock(ctx context.Context, walletID string, ttl time.Duration) (bool, error)
	ReleaseWalletLock(ctx context.Context, walletID string) error
}

// PresenceStoreInterface defines the interface for driver presence.
type PresenceStoreInterface interface {
	SetOnline(ctx context.Context, driverID string) error
	SetOffline(ctx context.Context, driverID string) error
	IsOnline(ctx context.Context, driverID string) (bool, error)
	CountOnline(ctx context.Context) (int, error)
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface     = (*LockStore)(nil)
	_ PresenceStoreInterface = (*PresenceStore)(nil)
)
