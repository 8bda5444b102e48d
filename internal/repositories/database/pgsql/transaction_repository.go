package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the transaction
// ledger.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransaction inserts a new ledger record. Records are never updated
// through this method; the only mutation a transaction ever sees is the
// proven flip inside SettleTransaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, blockchain_id, from_wallet_id, to_wallet_id, initiator_user_id, amount, proven, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.BlockchainID,
		txn.FromWalletID,
		txn.ToWalletID,
		txn.InitiatorUserID,
		txn.Amount,
		txn.Proven,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a ledger record.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, blockchain_id, from_wallet_id, to_wallet_id, initiator_user_id, amount, proven, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE transaction_id = $1;
	`
	var txn domain.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&txn.TransactionID,
		&txn.BlockchainID,
		&txn.FromWalletID,
		&txn.ToWalletID,
		&txn.InitiatorUserID,
		&txn.Amount,
		&txn.Proven,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListTransactionsByWallet retrieves the most recent transactions touching a
// wallet on either side.
func (r *PgxTransactionRepository) ListTransactionsByWallet(ctx context.Context, walletID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT transaction_id, blockchain_id, from_wallet_id, to_wallet_id, initiator_user_id, amount, proven, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE from_wallet_id = $1 OR to_wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for wallet %s: %w", walletID, err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		var txn domain.Transaction
		err := row.Scan(
			&txn.TransactionID,
			&txn.BlockchainID,
			&txn.FromWalletID,
			&txn.ToWalletID,
			&txn.InitiatorUserID,
			&txn.Amount,
			&txn.Proven,
			&txn.CreatedAt,
			&txn.CreatedBy,
			&txn.LastUpdatedAt,
			&txn.LastUpdatedBy,
		)
		return txn, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions for wallet %s: %w", walletID, err)
	}
	return txns, nil
}

// SettleTransaction flips the transaction to proven and applies the balance
// deltas in one database transaction. The proven flip runs first with a
// proven = FALSE guard, so a concurrent or repeated settlement of the same
// transaction updates zero rows and returns applied=false without touching
// balances. Wallet rows are locked in sorted ID order to keep lock
// acquisition deadlock-free, and every post-delta balance is re-read and
// re-validated under those locks.
func (r *PgxTransactionRepository) SettleTransaction(ctx context.Context, transactionID string, changes portsrepo.BalanceChanges) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	tag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET proven = TRUE, last_updated_at = $2
		WHERE transaction_id = $1 AND proven = FALSE;
	`, transactionID, time.Now())
	if err != nil {
		return false, translateConflict(fmt.Errorf("failed to mark transaction %s proven: %w", transactionID, err))
	}
	if tag.RowsAffected() == 0 {
		var proven bool
		err := tx.QueryRow(ctx, `SELECT proven FROM transactions WHERE transaction_id = $1;`, transactionID).Scan(&proven)
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		if err != nil {
			return false, fmt.Errorf("failed to check transaction %s: %w", transactionID, err)
		}
		// Already proven: settlement is a no-op.
		return false, nil
	}

	walletIDs := make([]string, 0, len(changes))
	for walletID := range changes {
		walletIDs = append(walletIDs, walletID)
	}
	sort.Strings(walletIDs)

	for _, walletID := range walletIDs {
		var locked string
		err := tx.QueryRow(ctx, `SELECT wallet_id FROM wallets WHERE wallet_id = $1 FOR UPDATE;`, walletID).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.NewNotFoundError(fmt.Sprintf("wallet %s not found", walletID))
		}
		if err != nil {
			return false, translateConflict(fmt.Errorf("failed to lock wallet %s: %w", walletID, err))
		}
	}

	for _, walletID := range walletIDs {
		for ticker, delta := range changes[walletID] {
			var current decimal.Decimal
			err := tx.QueryRow(ctx, `
				SELECT balance FROM wallet_balances
				WHERE wallet_id = $1 AND ticker = $2;
			`, walletID, ticker).Scan(&current)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return false, translateConflict(fmt.Errorf("failed to read balance of %s for wallet %s: %w", ticker, walletID, err))
			}

			next := current.Add(delta)
			if next.IsNegative() {
				return false, fmt.Errorf("%w: settling transaction %s would leave wallet %s with %s %s", apperrors.ErrInsufficientFunds, transactionID, walletID, next, ticker)
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO wallet_balances (wallet_id, ticker, balance)
				VALUES ($1, $2, $3)
				ON CONFLICT (wallet_id, ticker) DO UPDATE SET balance = EXCLUDED.balance;
			`, walletID, ticker, next)
			if err != nil {
				return false, translateConflict(fmt.Errorf("failed to write balance of %s for wallet %s: %w", ticker, walletID, err))
			}
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return true, nil
}
