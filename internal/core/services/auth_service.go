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
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/bloxedu/blox_backend/internal/utils"
)

type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new auth service instance.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

// Login verifies credentials and returns a signed JWT plus the user. Unknown
// email and wrong password produce the same error so the response does not
// reveal which accounts exist.
func (s *authService) Login(ctx context.Context, email string, password string) (string, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return "", nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Failed login attempt", "userID", user.UserID)
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return "", nil, apperrors.NewAppError(500, "failed to sign token", err)
	}

	logger.Info("User logged in", "userID", user.UserID)
	return token, user, nil
}
