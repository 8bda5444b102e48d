package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBlockchainRepository struct {
	BaseRepository
}

// newPgxBlockchainRepository creates a new repository for the currency
// registry.
func newPgxBlockchainRepository(pool *pgxpool.Pool) portsrepo.BlockchainRepositoryFacade {
	return &PgxBlockchainRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BlockchainRepositoryFacade = (*PgxBlockchainRepository)(nil)

const blockchainColumns = `blockchain_id, ticker, type, exchange_wallet_id, consensus_algorithm, created_at, created_by, last_updated_at, last_updated_by`

// SaveBlockchain inserts a new currency.
func (r *PgxBlockchainRepository) SaveBlockchain(ctx context.Context, blockchain domain.Blockchain) error {
	query := `
		INSERT INTO blockchains (blockchain_id, ticker, type, exchange_wallet_id, consensus_algorithm, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		blockchain.BlockchainID,
		blockchain.Ticker,
		string(blockchain.Type),
		blockchain.ExchangeWalletID,
		blockchain.ConsensusAlgorithm,
		blockchain.CreatedAt,
		blockchain.CreatedBy,
		blockchain.LastUpdatedAt,
		blockchain.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, blockchain.Ticker)
		}
		return fmt.Errorf("failed to save blockchain %s: %w", blockchain.Ticker, err)
	}
	return nil
}

// FindBlockchainByID retrieves a currency by its ID.
func (r *PgxBlockchainRepository) FindBlockchainByID(ctx context.Context, blockchainID string) (*domain.Blockchain, error) {
	return r.findBlockchain(ctx, `WHERE blockchain_id = $1`, blockchainID)
}

// FindBlockchainByTicker retrieves a currency by its unique ticker.
func (r *PgxBlockchainRepository) FindBlockchainByTicker(ctx context.Context, ticker string) (*domain.Blockchain, error) {
	return r.findBlockchain(ctx, `WHERE ticker = $1`, ticker)
}

func (r *PgxBlockchainRepository) findBlockchain(ctx context.Context, where string, arg any) (*domain.Blockchain, error) {
	query := fmt.Sprintf(`SELECT %s FROM blockchains %s;`, blockchainColumns, where)

	var blockchain domain.Blockchain
	var blockchainType string
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&blockchain.BlockchainID,
		&blockchain.Ticker,
		&blockchainType,
		&blockchain.ExchangeWalletID,
		&blockchain.ConsensusAlgorithm,
		&blockchain.CreatedAt,
		&blockchain.CreatedBy,
		&blockchain.LastUpdatedAt,
		&blockchain.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency not found")
		}
		return nil, fmt.Errorf("failed to find blockchain: %w", err)
	}
	blockchain.Type = domain.BlockchainType(blockchainType)
	return &blockchain, nil
}

// ListBlockchains retrieves every registered currency.
func (r *PgxBlockchainRepository) ListBlockchains(ctx context.Context) ([]domain.Blockchain, error) {
	query := fmt.Sprintf(`SELECT %s FROM blockchains ORDER BY ticker;`, blockchainColumns)
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blockchains: %w", err)
	}
	defer rows.Close()

	blockchains, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Blockchain, error) {
		var blockchain domain.Blockchain
		var blockchainType string
		err := row.Scan(
			&blockchain.BlockchainID,
			&blockchain.Ticker,
			&blockchainType,
			&blockchain.ExchangeWalletID,
			&blockchain.ConsensusAlgorithm,
			&blockchain.CreatedAt,
			&blockchain.CreatedBy,
			&blockchain.LastUpdatedAt,
			&blockchain.LastUpdatedBy,
		)
		blockchain.Type = domain.BlockchainType(blockchainType)
		return blockchain, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan blockchains: %w", err)
	}
	return blockchains, nil
}
