package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bloxedu/blox_backend/internal/adapters/market"
	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// blockchainService implements the currency registry and rate lookups.
type blockchainService struct {
	blockchainRepo portsrepo.BlockchainRepositoryFacade
	marketSource   market.Source
}

// NewBlockchainService creates a new blockchain service instance.
func NewBlockchainService(blockchainRepo portsrepo.BlockchainRepositoryFacade, marketSource market.Source) portssvc.BlockchainSvcFacade {
	return &blockchainService{
		blockchainRepo: blockchainRepo,
		marketSource:   marketSource,
	}
}

// CreateBlockchain registers a new currency. A simple currency needs an
// exchange wallet to trade against; fiat must not have one.
func (s *blockchainService) CreateBlockchain(ctx context.Context, req dto.CreateBlockchainRequest, creatorUserID string) (*domain.Blockchain, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	blockchainType := domain.BlockchainType(req.Type)
	switch blockchainType {
	case domain.BlockchainFiat:
		if req.ExchangeWalletID != nil {
			return nil, fmt.Errorf("%w: fiat currency cannot have an exchange wallet", apperrors.ErrValidation)
		}
	case domain.BlockchainSimple:
		if req.ExchangeWalletID == nil || *req.ExchangeWalletID == "" {
			return nil, fmt.Errorf("%w: exchange wallet is required for type %q", apperrors.ErrValidation, req.Type)
		}
	default:
		return nil, fmt.Errorf("%w: unknown currency type %q", apperrors.ErrValidation, req.Type)
	}

	existing, err := s.blockchainRepo.FindBlockchainByTicker(ctx, req.Ticker)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: currency with ticker %s already exists", apperrors.ErrDuplicate, req.Ticker)
	}

	now := time.Now()
	blockchain := domain.Blockchain{
		BlockchainID:       uuid.NewString(),
		Ticker:             req.Ticker,
		Type:               blockchainType,
		ExchangeWalletID:   req.ExchangeWalletID,
		ConsensusAlgorithm: req.ConsensusAlgorithm,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.blockchainRepo.SaveBlockchain(ctx, blockchain); err != nil {
		logger.Error("Failed to save blockchain", "ticker", req.Ticker, "error", err)
		return nil, err
	}

	logger.Info("Blockchain created", "ticker", blockchain.Ticker, "blockchainID", blockchain.BlockchainID)
	return &blockchain, nil
}

func (s *blockchainService) GetBlockchainByTicker(ctx context.Context, ticker string) (*domain.Blockchain, error) {
	return s.blockchainRepo.FindBlockchainByTicker(ctx, ticker)
}

func (s *blockchainService) GetBlockchainByID(ctx context.Context, blockchainID string) (*domain.Blockchain, error) {
	return s.blockchainRepo.FindBlockchainByID(ctx, blockchainID)
}

// ListTradable returns every registered currency except fiat.
func (s *blockchainService) ListTradable(ctx context.Context) ([]domain.Blockchain, error) {
	blockchains, err := s.blockchainRepo.ListBlockchains(ctx)
	if err != nil {
		return nil, err
	}
	tradable := make([]domain.Blockchain, 0, len(blockchains))
	for _, b := range blockchains {
		if !b.IsFiat() {
			tradable = append(tradable, b)
		}
	}
	return tradable, nil
}

// ExchangeRate returns the current USD price of one unit of the ticker. The
// dispatch is exhaustive over the currency type set; an unrecognized type in
// the registry is a configuration error, not a tradable state.
func (s *blockchainService) ExchangeRate(ctx context.Context, ticker string) (decimal.Decimal, error) {
	blockchain, err := s.blockchainRepo.FindBlockchainByTicker(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}

	switch blockchain.Type {
	case domain.BlockchainFiat:
		return decimal.NewFromInt(1), nil
	case domain.BlockchainSimple:
		rate, err := s.marketSource.LastPrice(ctx, blockchain.Ticker)
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Market rate fetch failed", "ticker", ticker, "error", err)
			return decimal.Zero, fmt.Errorf("%w: fetching rate for %s: %v", apperrors.ErrRateUnavailable, ticker, err)
		}
		if !rate.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: upstream returned non-positive rate %s for %s", apperrors.ErrRateUnavailable, rate, ticker)
		}
		return rate, nil
	default:
		return decimal.Zero, apperrors.NewAppError(500, fmt.Sprintf("currency %s has unrecognized type %q", ticker, blockchain.Type), apperrors.ErrInternal)
	}
}
