package tests

import (
	"context"
	"testing"

	"marketplace/internal/domain"
	"marketplace/internal/service"
)

// ──────────────────────────────────────────────
// DRIVER PRESENCE AND PLATFORM STATS
// ──────────────────────────────────────────────

func TestPresence_OnlyDriversCanGoOnline(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: "user-driver", Role: domain.RoleDriver})
	userRepo.AddUser(&domain.User{ID: "user-customer", Role: domain.RoleCustomer})

	presenceStore := NewMockPresenceStore()
	presenceService := service.NewPresenceService(presenceStore, userRepo)
	ctx := context.Background()

	if err := presenceService.SetOnline(ctx, "user-driver"); err != nil {
		t.Fatalf("driver online: %v", err)
	}
	if err := presenceService.SetOnline(ctx, "user-customer"); err != service.ErrNotADriver {
		t.Errorf("expected ErrNotADriver, got %v", err)
	}

	count, err := presenceService.CountOnline(ctx)
	if err != nil {
		t.Fatalf("count online: %v", err)
	}
	if count != 1 {
		t.Errorf("online count = %d, want 1", count)
	}
}

func TestPresence_OfflineRemovesDriver(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: "user-driver", Role: domain.RoleDriver})

	presenceStore := NewMockPresenceStore()
	presenceService := service.NewPresenceService(presenceStore, userRepo)
	ctx := context.Background()

	if err := presenceService.SetOnline(ctx, "user-driver"); err != nil {
		t.Fatalf("online: %v", err)
	}
	if err := presenceService.SetOffline(ctx, "user-driver"); err != nil {
		t.Fatalf("offline: %v", err)
	}

	count, _ := presenceService.CountOnline(ctx)
	if count != 0 {
		t.Errorf("online count = %d, want 0", count)
	}
}

func TestStats_Overview(t *testing.T) {
	t.Parallel()

	env := newOrderEnv()

	first := env.createOrder(t)
	env.createOrder(t)
	env.walletRepo.AddWallet(&domain.Wallet{
		ID: "wallet-driver", UserID: "user-driver", Balance: 1000000, IsActive: true,
	})
	env.completeOrder(t, first)

	presenceStore := NewMockPresenceStore()
	presenceService := service.NewPresenceService(presenceStore, env.userRepo)
	if err := presenceService.SetOnline(context.Background(), "user-driver"); err != nil {
		t.Fatalf("online: %v", err)
	}

	statsService := service.NewStatsService(env.orderRepo, env.catalogRepo, presenceService)
	stats, err := statsService.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if stats.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", stats.TotalOrders)
	}
	if stats.CompletedOrders != 1 {
		t.Errorf("CompletedOrders = %d, want 1", stats.CompletedOrders)
	}
	if stats.OnlineDrivers != 1 {
		t.Errorf("OnlineDrivers = %d, want 1", stats.OnlineDrivers)
	}
	if stats.ActiveCategories != 1 {
		t.Errorf("ActiveCategories = %d, want 1", stats.ActiveCategories)
	}
}

func TestStats_NilPresenceDegradesToZero(t *testing.T) {
	t.Parallel()

	env := newOrderEnv()
	statsService := service.NewStatsService(env.orderRepo, env.catalogRepo, nil)

	stats, err := statsService.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if stats.OnlineDrivers != 0 {
		t.Errorf("OnlineDrivers = %d, want 0", stats.OnlineDrivers)
	}
}
