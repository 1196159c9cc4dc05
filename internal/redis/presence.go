package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const onlineDriversKey = "drivers:online"

// PresenceStore tracks which drivers are currently online in a Redis
// set. It backs the platform stats; no geospatial matching happens here.
type PresenceStore struct {
	client *redis.Client
}

// NewPresenceStore creates a new PresenceStore.
func NewPresenceStore(client *redis.Client) *PresenceStore {
	return &PresenceStore{client: client}
}

// SetOnline marks a driver as online.
func (s *PresenceStore) SetOnline(ctx context.Context, driverID string) error {
	return s.client.SAdd(ctx, onlineDriversKey, driverID).Err()
}

// SetOffline marks a driver as offline.
func (s *PresenceStore) SetOffline(ctx context.Context, driverID string) error {
	return s.client.SRem(ctx, onlineDriversKey, driverID).Err()
}

// IsOnline reports whether a driver is currently online.
func (s *PresenceStore) IsOnline(ctx context.Context, driverID string) (bool, error) {
	return s.client.SIsMember(ctx, onlineDriversKey, driverID).Result()
}

// CountOnline returns the number of online drivers.
func (s *PresenceStore) CountOnline(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, onlineDriversKey).Result()
	return int(n), err
}
