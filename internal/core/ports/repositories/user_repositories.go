package repositories

import (
	"context"

	"github.com/bloxedu/blox_backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	FollowBlockchain(ctx context.Context, userID string, blockchainID string) error
	UnfollowBlockchain(ctx context.Context, userID string, blockchainID string) error
}
