package service

import (
	"context"

	"marketplace/internal/domain"
	"marketplace/internal/repository"
)

// PlatformStats is the homepage statistics block.
type PlatformStats struct {
	TotalOrders      int
	CompletedOrders  int
	OnlineDrivers    int
	ActiveCategories int
}

// StatsService aggregates platform-wide counters.
type StatsService struct {
	orderRepo       repository.OrderRepository
	catalogRepo     repository.CatalogRepository
	presenceService *PresenceService
}

// NewStatsService creates a new StatsService. The presence service may
// be nil, in which case online drivers report as zero.
func NewStatsService(
	orderRepo repository.OrderRepository,
	catalogRepo repository.CatalogRepository,
	presenceService *PresenceService,
) *StatsService {
	return &StatsService{
		orderRepo:       orderRepo,
		catalogRepo:     catalogRepo,
		presenceService: presenceService,
	}
}

// Overview collects the platform statistics.
func (s *StatsService) Overview(ctx context.Context) (*PlatformStats, error) {
	total, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.orderRepo.CountByStatus(ctx, domain.OrderStatusCompleted)
	if err != nil {
		return nil, err
	}

	categories, err := s.catalogRepo.CountActiveCategories(ctx)
	if err != nil {
		return nil, err
	}

	online := 0
	if s.presenceService != nil {
		online, err = s.presenceService.CountOnline(ctx)
		if err != nil {
			// Presence is advisory; stats degrade to zero rather than fail.
			online = 0
		}
	}

	return &PlatformStats{
		TotalOrders:      total,
		CompletedOrders:  completed,
		OnlineDrivers:    online,
		ActiveCategories: categories,
	}, nil
}
