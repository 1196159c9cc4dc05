package service

import (
	"context"

	"marketplace/internal/domain"
	internalredis "marketplace/internal/redis"
	"marketplace/internal/repository"
)

// PresenceService toggles driver online state in Redis. Presence feeds
// the platform stats only; driver dispatch is handled elsewhere.
type PresenceService struct {
	presenceStore internalredis.PresenceStoreInterface
	userRepo      repository.UserRepository
}

// NewPresenceService creates a new PresenceService.
func NewPresenceService(presenceStore internalredis.PresenceStoreInterface, userRepo repository.UserRepository) *PresenceService {
	return &PresenceService{
		presenceStore: presenceStore,
		userRepo:      userRepo,
	}
}

// SetOnline marks a driver as online.
func (s *PresenceService) SetOnline(ctx context.Context, driverID string) error {
	if err := s.checkDriver(ctx, driverID); err != nil {
		return err
	}
	return s.presenceStore.SetOnline(ctx, driverID)
}

// SetOffline marks a driver as offline.
func (s *PresenceService) SetOffline(ctx context.Context, driverID string) error {
	if err := s.checkDriver(ctx, driverID); err != nil {
		return err
	}
	return s.presenceStore.SetOffline(ctx, driverID)
}

// CountOnline returns the number of online drivers.
func (s *PresenceService) CountOnline(ctx context.Context) (int, error) {
	return s.presenceStore.CountOnline(ctx)
}

func (s *PresenceService) checkDriver(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleDriver {
		return ErrNotADriver
	}
	return nil
}
