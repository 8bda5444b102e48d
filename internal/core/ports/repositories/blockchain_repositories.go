package repositories

import (
	"context"

	"github.com/bloxedu/blox_backend/internal/core/domain"
)

// BlockchainRepositoryFacade defines persistence operations for the currency
// registry.
type BlockchainRepositoryFacade interface {
	SaveBlockchain(ctx context.Context, blockchain domain.Blockchain) error
	FindBlockchainByID(ctx context.Context, blockchainID string) (*domain.Blockchain, error)
	FindBlockchainByTicker(ctx context.Context, ticker string) (*domain.Blockchain, error)
	ListBlockchains(ctx context.Context) ([]domain.Blockchain, error)
}
