package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/domain"
	"marketplace/internal/repository"
)

// UserService handles user registration. Every user gets a wallet on
// registration (1:1).
type UserService struct {
	userRepo      repository.UserRepository
	walletService *WalletService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, walletService *WalletService) *UserService {
	return &UserService{
		userRepo:      userRepo,
		walletService: walletService,
	}
}

// RegisterRequest contains the parameters for registering a user.
type RegisterRequest struct {
	Name  string
	Phone string
	Role  domain.Role
}

// Register creates a user with a fresh zero-balance wallet. An empty
// role defaults to customer.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidUserName
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, ErrInvalidPhone
	}

	role := req.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil && err != repository.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneAlreadyRegistered
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      role,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.walletService.CreateWallet(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.userRepo.GetByID(ctx, userID)
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}
