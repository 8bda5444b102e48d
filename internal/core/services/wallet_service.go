package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/bloxedu/blox_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// addressBytes is the entropy of a generated wallet address; hex encoding
// doubles it to a 64-character string.
const addressBytes = 32

// maxAddressAttempts bounds address generation retries on collision.
const maxAddressAttempts = 10

type walletService struct {
	walletRepo     portsrepo.WalletRepositoryFacade
	blockchainRepo portsrepo.BlockchainRepositoryFacade
	classroomRepo  portsrepo.ClassroomRepositoryFacade
}

// NewWalletService creates a new wallet service instance.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, blockchainRepo portsrepo.BlockchainRepositoryFacade, classroomRepo portsrepo.ClassroomRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo:     walletRepo,
		blockchainRepo: blockchainRepo,
		classroomRepo:  classroomRepo,
	}
}

// CreateWallet creates a wallet with a fresh collision-checked address and
// the creator as sole admin.
func (s *walletService) CreateWallet(ctx context.Context, creatorUserID string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	address, err := s.generateUniqueAddress(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  address,
		Admins:   []string{creatorUserID},
		Members:  []string{},
		Balances: map[string]decimal.Decimal{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		logger.Error("Failed to save wallet", "error", err)
		return nil, err
	}

	logger.Info("Wallet created", "walletID", wallet.WalletID)
	return &wallet, nil
}

func (s *walletService) generateUniqueAddress(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAddressAttempts; attempt++ {
		address, err := utils.GenerateSecureRandomString(addressBytes)
		if err != nil {
			return "", apperrors.NewAppError(500, "failed to generate wallet address", err)
		}
		exists, err := s.walletRepo.AddressExists(ctx, address)
		if err != nil {
			return "", err
		}
		if !exists {
			return address, nil
		}
	}
	return "", apperrors.NewAppError(500, "could not generate a unique wallet address", apperrors.ErrInternal)
}

func (s *walletService) GetWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	return s.walletRepo.FindWalletByAddress(ctx, address)
}

func (s *walletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return s.walletRepo.FindWalletByID(ctx, walletID)
}

func (s *walletService) ListUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	return s.walletRepo.FindWalletsByUser(ctx, userID)
}

// UpdateWallet applies a PATCH to a wallet. Renames and balance writes need
// wallet admin; attaching to a classroom additionally needs classroom admin.
// Balance tickers must exist in the currency registry.
func (s *walletService) UpdateWallet(ctx context.Context, address string, req dto.UpdateWalletRequest, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallet, err := s.walletRepo.FindWalletByAddress(ctx, address)
	if err != nil {
		return err
	}
	if !wallet.IsAdmin(requestingUserID) {
		return fmt.Errorf("%w: user %s is not an admin of wallet %s", apperrors.ErrForbidden, requestingUserID, wallet.WalletID)
	}

	now := time.Now()

	if req.Name != nil {
		if err := s.walletRepo.UpdateWalletName(ctx, wallet.WalletID, *req.Name, requestingUserID, now); err != nil {
			return err
		}
	}

	if req.ClassroomID != nil {
		classroom, err := s.classroomRepo.FindClassroomByID(ctx, *req.ClassroomID)
		if err != nil {
			return err
		}
		if !classroom.IsAdmin(requestingUserID) {
			return fmt.Errorf("%w: user %s is not an admin of classroom %s", apperrors.ErrForbidden, requestingUserID, classroom.ClassroomID)
		}
		if err := s.walletRepo.UpdateWalletClassroom(ctx, wallet.WalletID, classroom.ClassroomID, requestingUserID, now); err != nil {
			return err
		}
	}

	for ticker, amount := range req.Balances {
		if _, err := s.blockchainRepo.FindBlockchainByTicker(ctx, ticker); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, ticker)
			}
			return err
		}
		if amount.IsNegative() {
			return fmt.Errorf("%w: balance for %s cannot be negative", apperrors.ErrValidation, ticker)
		}
		if err := s.walletRepo.SetBalance(ctx, wallet.WalletID, ticker, amount); err != nil {
			return err
		}
	}

	logger.Info("Wallet updated", "walletID", wallet.WalletID, "updatedBy", requestingUserID)
	return nil
}

// LeaveWallet removes the requesting user from both the admin and member
// sets. The wallet itself survives even with no admins left.
func (s *walletService) LeaveWallet(ctx context.Context, address string, requestingUserID string) error {
	wallet, err := s.walletRepo.FindWalletByAddress(ctx, address)
	if err != nil {
		return err
	}
	if !wallet.IsAdmin(requestingUserID) && !wallet.IsMember(requestingUserID) {
		return fmt.Errorf("%w: user %s does not belong to wallet %s", apperrors.ErrValidation, requestingUserID, wallet.WalletID)
	}
	if wallet.IsAdmin(requestingUserID) {
		if err := s.walletRepo.RemoveWalletAdmin(ctx, wallet.WalletID, requestingUserID); err != nil {
			return err
		}
	}
	if wallet.IsMember(requestingUserID) {
		if err := s.walletRepo.RemoveWalletMember(ctx, wallet.WalletID, requestingUserID); err != nil {
			return err
		}
	}
	return nil
}

func (s *walletService) AddMember(ctx context.Context, address string, userID string, requestingUserID string) error {
	wallet, err := s.walletRepo.FindWalletByAddress(ctx, address)
	if err != nil {
		return err
	}
	if !wallet.IsAdmin(requestingUserID) {
		return fmt.Errorf("%w: user %s is not an admin of wallet %s", apperrors.ErrForbidden, requestingUserID, wallet.WalletID)
	}
	if wallet.IsMember(userID) || wallet.IsAdmin(userID) {
		return fmt.Errorf("%w: user %s already belongs to wallet %s", apperrors.ErrDuplicate, userID, wallet.WalletID)
	}
	return s.walletRepo.AddWalletMember(ctx, wallet.WalletID, userID)
}

func (s *walletService) RemoveMember(ctx context.Context, address string, userID string, requestingUserID string) error {
	wallet, err := s.walletRepo.FindWalletByAddress(ctx, address)
	if err != nil {
		return err
	}
	if !wallet.IsAdmin(requestingUserID) {
		return fmt.Errorf("%w: user %s is not an admin of wallet %s", apperrors.ErrForbidden, requestingUserID, wallet.WalletID)
	}
	if !wallet.IsMember(userID) {
		return fmt.Errorf("%w: user %s is not a member of wallet %s", apperrors.ErrNotFound, userID, wallet.WalletID)
	}
	return s.walletRepo.RemoveWalletMember(ctx, wallet.WalletID, userID)
}
