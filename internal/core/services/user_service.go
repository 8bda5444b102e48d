package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/bloxedu/blox_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	userRepo       portsrepo.UserRepositoryFacade
	blockchainRepo portsrepo.BlockchainRepositoryFacade
}

// NewUserService creates a new user service instance.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, blockchainRepo portsrepo.BlockchainRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:       userRepo,
		blockchainRepo: blockchainRepo,
	}
}

// RegisterUser creates a new account. Emails are unique, case-insensitive.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, email)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	accountType := domain.Personal
	if req.AccountType != "" {
		accountType = domain.AccountType(req.AccountType)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		AccountType:  accountType,
		Public:       true,
		PasswordHash: hash,
		Following:    []string{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", "email", email, "error", err)
		return nil, err
	}

	logger.Info("User registered", "userID", user.UserID)
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdateUser patches profile fields. Users may only update themselves.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, fmt.Errorf("%w: cannot update another user's profile", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.AccountType != nil {
		user.AccountType = domain.AccountType(*req.AccountType)
	}
	if req.Public != nil {
		user.Public = *req.Public
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// FollowBlockchain adds the currency to the user's watch list.
func (s *userService) FollowBlockchain(ctx context.Context, userID string, ticker string) error {
	blockchain, err := s.blockchainRepo.FindBlockchainByTicker(ctx, ticker)
	if err != nil {
		return err
	}
	return s.userRepo.FollowBlockchain(ctx, userID, blockchain.BlockchainID)
}

func (s *userService) UnfollowBlockchain(ctx context.Context, userID string, ticker string) error {
	blockchain, err := s.blockchainRepo.FindBlockchainByTicker(ctx, ticker)
	if err != nil {
		return err
	}
	return s.userRepo.UnfollowBlockchain(ctx, userID, blockchain.BlockchainID)
}
