package tests

import (
	"context"
	"testing"

	"marketplace/internal/domain"
	"marketplace/internal/service"
)

// ──────────────────────────────────────────────
// USER REGISTRATION
// ──────────────────────────────────────────────

func newUserEnv() (*MockUserRepository, *MockWalletRepository, *service.UserService) {
	userRepo := NewMockUserRepository()
	walletRepo := NewMockWalletRepository()
	walletService := service.NewWalletService(walletRepo, nil, nil)
	return userRepo, walletRepo, service.NewUserService(userRepo, walletService)
}

func TestRegister_CreatesUserWithWallet(t *testing.T) {
	t.Parallel()

	_, walletRepo, userService := newUserEnv()

	user, err := userService.Register(context.Background(), service.RegisterRequest{
		Name:  "Budi",
		Phone: "081234567890",
		Role:  domain.RoleDriver,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.Role != domain.RoleDriver {
		t.Errorf("role = %s, want driver", user.Role)
	}

	wallet := walletRepo.GetWallet(user.ID)
	if wallet == nil {
		t.Fatal("expected wallet created with user")
	}
	if wallet.Balance != 0 {
		t.Errorf("new wallet balance = %v, want 0", wallet.Balance)
	}
	if !wallet.IsActive {
		t.Error("new wallet should be active")
	}
}

func TestRegister_DefaultsToCustomerRole(t *testing.T) {
	t.Parallel()

	_, _, userService := newUserEnv()

	user, err := userService.Register(context.Background(), service.RegisterRequest{
		Name:  "Sari",
		Phone: "081234567891",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Errorf("role = %s, want customer", user.Role)
	}
}

func TestRegister_RejectsDuplicatePhone(t *testing.T) {
	t.Parallel()

	_, _, userService := newUserEnv()
	ctx := context.Background()

	if _, err := userService.Register(ctx, service.RegisterRequest{
		Name:  "First",
		Phone: "0811",
	}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := userService.Register(ctx, service.RegisterRequest{
		Name:  "Second",
		Phone: "0811",
	})
	if err != service.ErrPhoneAlreadyRegistered {
		t.Errorf("expected ErrPhoneAlreadyRegistered, got %v", err)
	}
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	_, _, userService := newUserEnv()
	ctx := context.Background()

	if _, err := userService.Register(ctx, service.RegisterRequest{Phone: "0811"}); err != service.ErrInvalidUserName {
		t.Errorf("expected ErrInvalidUserName, got %v", err)
	}
	if _, err := userService.Register(ctx, service.RegisterRequest{Name: "X"}); err != service.ErrInvalidPhone {
		t.Errorf("expected ErrInvalidPhone, got %v", err)
	}
	if _, err := userService.Register(ctx, service.RegisterRequest{
		Name: "X", Phone: "0811", Role: "superuser",
	}); err != service.ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}
