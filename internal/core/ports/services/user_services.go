package services

import (
	"context"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/bloxedu/blox_backend/internal/dto"
)

// UserSvcFacade manages user accounts and blockchain follows.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
	FollowBlockchain(ctx context.Context, userID string, ticker string) error
	UnfollowBlockchain(ctx context.Context, userID string, ticker string) error
}

// AuthSvcFacade authenticates users and issues tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed JWT plus the user.
	Login(ctx context.Context, email string, password string) (string, *domain.User, error)
}
