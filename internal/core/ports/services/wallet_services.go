package services

import (
	"context"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/bloxedu/blox_backend/internal/dto"
)

// WalletSvcFacade manages wallet lifecycle and membership.
type WalletSvcFacade interface {
	// CreateWallet generates a collision-checked address and makes the creator
	// an admin.
	CreateWallet(ctx context.Context, creatorUserID string) (*domain.Wallet, error)
	GetWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error)
	GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	ListUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error)
	// UpdateWallet applies a PATCH: rename, attach to a classroom the user
	// administers, or (admin only) set balances directly after ticker
	// validation against the currency registry.
	UpdateWallet(ctx context.Context, address string, req dto.UpdateWalletRequest, requestingUserID string) error
	// LeaveWallet removes the requesting user from both admin and member sets.
	LeaveWallet(ctx context.Context, address string, requestingUserID string) error
	AddMember(ctx context.Context, address string, userID string, requestingUserID string) error
	RemoveMember(ctx context.Context, address string, userID string, requestingUserID string) error
}
