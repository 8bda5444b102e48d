package services

import (
	"context"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// RateQuoterSvc is the narrow rate-lookup capability consumed by the trade
// and leaderboard services.
type RateQuoterSvc interface {
	// ExchangeRate returns the current USD price of one unit of the ticker.
	// Fiat is always exactly 1 with no network call. A failed or non-positive
	// upstream quote surfaces as apperrors.ErrRateUnavailable - never a
	// substituted default.
	ExchangeRate(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// BlockchainSvcFacade manages the currency registry and rate lookups.
type BlockchainSvcFacade interface {
	RateQuoterSvc

	CreateBlockchain(ctx context.Context, req dto.CreateBlockchainRequest, creatorUserID string) (*domain.Blockchain, error)
	GetBlockchainByTicker(ctx context.Context, ticker string) (*domain.Blockchain, error)
	GetBlockchainByID(ctx context.Context, blockchainID string) (*domain.Blockchain, error)
	// ListTradable returns every non-fiat currency. USD is excluded because it
	// has no exchange wallet and no market rate.
	ListTradable(ctx context.Context) ([]domain.Blockchain, error)
}
