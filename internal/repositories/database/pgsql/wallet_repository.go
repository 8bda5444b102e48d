package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet data.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const walletColumns = `wallet_id, address, name, classroom_id, created_at, created_by, last_updated_at, last_updated_by`

// SaveWallet inserts a wallet together with its membership rows and any
// initial balances.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO wallets (wallet_id, address, name, classroom_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, wallet.WalletID, wallet.Address, wallet.Name, wallet.ClassroomID, wallet.CreatedAt, wallet.CreatedBy, wallet.LastUpdatedAt, wallet.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: wallet %s", apperrors.ErrDuplicate, wallet.WalletID)
		}
		return fmt.Errorf("failed to save wallet %s: %w", wallet.WalletID, err)
	}

	for _, userID := range wallet.Admins {
		if _, err := tx.Exec(ctx, `INSERT INTO wallet_admins (wallet_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, wallet.WalletID, userID); err != nil {
			return fmt.Errorf("failed to save wallet admin: %w", err)
		}
	}
	for _, userID := range wallet.Members {
		if _, err := tx.Exec(ctx, `INSERT INTO wallet_members (wallet_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, wallet.WalletID, userID); err != nil {
			return fmt.Errorf("failed to save wallet member: %w", err)
		}
	}
	for ticker, amount := range wallet.Balances {
		if _, err := tx.Exec(ctx, `
			INSERT INTO wallet_balances (wallet_id, ticker, balance)
			VALUES ($1, $2, $3)
			ON CONFLICT (wallet_id, ticker) DO UPDATE SET balance = EXCLUDED.balance;
		`, wallet.WalletID, ticker, amount); err != nil {
			return fmt.Errorf("failed to save wallet balance: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindWalletByID retrieves a wallet with its balances and membership.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return r.findWallet(ctx, `WHERE wallet_id = $1`, walletID)
}

// FindWalletByAddress retrieves a wallet by its hex address.
func (r *PgxWalletRepository) FindWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	return r.findWallet(ctx, `WHERE address = $1`, address)
}

func (r *PgxWalletRepository) findWallet(ctx context.Context, where string, arg any) (*domain.Wallet, error) {
	query := fmt.Sprintf(`SELECT %s FROM wallets %s;`, walletColumns, where)

	var wallet domain.Wallet
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&wallet.WalletID,
		&wallet.Address,
		&wallet.Name,
		&wallet.ClassroomID,
		&wallet.CreatedAt,
		&wallet.CreatedBy,
		&wallet.LastUpdatedAt,
		&wallet.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("wallet not found")
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}

	if err := r.loadAssociations(ctx, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *PgxWalletRepository) loadAssociations(ctx context.Context, wallet *domain.Wallet) error {
	wallet.Admins = []string{}
	wallet.Members = []string{}
	wallet.Balances = map[string]decimal.Decimal{}

	rows, err := r.Pool.Query(ctx, `SELECT user_id FROM wallet_admins WHERE wallet_id = $1 ORDER BY user_id;`, wallet.WalletID)
	if err != nil {
		return fmt.Errorf("failed to query wallet admins: %w", err)
	}
	wallet.Admins, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to scan wallet admins: %w", err)
	}

	rows, err = r.Pool.Query(ctx, `SELECT user_id FROM wallet_members WHERE wallet_id = $1 ORDER BY user_id;`, wallet.WalletID)
	if err != nil {
		return fmt.Errorf("failed to query wallet members: %w", err)
	}
	wallet.Members, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to scan wallet members: %w", err)
	}

	rows, err = r.Pool.Query(ctx, `SELECT ticker, balance FROM wallet_balances WHERE wallet_id = $1;`, wallet.WalletID)
	if err != nil {
		return fmt.Errorf("failed to query wallet balances: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ticker string
		var balance decimal.Decimal
		if err := rows.Scan(&ticker, &balance); err != nil {
			return fmt.Errorf("failed to scan wallet balance: %w", err)
		}
		wallet.Balances[ticker] = balance
	}
	return rows.Err()
}

// AddressExists reports whether any wallet already uses the address.
func (r *PgxWalletRepository) AddressExists(ctx context.Context, address string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE address = $1);`, address).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check wallet address: %w", err)
	}
	return exists, nil
}

// FindWalletsByUser retrieves every wallet the user administers or belongs to.
func (r *PgxWalletRepository) FindWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM wallets
		WHERE wallet_id IN (
			SELECT wallet_id FROM wallet_admins WHERE user_id = $1
			UNION
			SELECT wallet_id FROM wallet_members WHERE user_id = $1
		)
		ORDER BY created_at;
	`, walletColumns)
	return r.collectWallets(ctx, query, userID)
}

// ListWallets retrieves every wallet.
func (r *PgxWalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	query := fmt.Sprintf(`SELECT %s FROM wallets ORDER BY created_at;`, walletColumns)
	return r.collectWallets(ctx, query)
}

func (r *PgxWalletRepository) collectWallets(ctx context.Context, query string, args ...any) ([]domain.Wallet, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	wallets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Wallet, error) {
		var wallet domain.Wallet
		err := row.Scan(
			&wallet.WalletID,
			&wallet.Address,
			&wallet.Name,
			&wallet.ClassroomID,
			&wallet.CreatedAt,
			&wallet.CreatedBy,
			&wallet.LastUpdatedAt,
			&wallet.LastUpdatedBy,
		)
		return wallet, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan wallets: %w", err)
	}

	for i := range wallets {
		if err := r.loadAssociations(ctx, &wallets[i]); err != nil {
			return nil, err
		}
	}
	return wallets, nil
}

// SetBalance upserts a single currency balance. Non-negativity is the trade
// service's responsibility; this is the raw write used by direct admin edits.
func (r *PgxWalletRepository) SetBalance(ctx context.Context, walletID string, ticker string, amount decimal.Decimal) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO wallet_balances (wallet_id, ticker, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (wallet_id, ticker) DO UPDATE SET balance = EXCLUDED.balance;
	`, walletID, ticker, amount)
	if err != nil {
		return fmt.Errorf("failed to set balance of %s for wallet %s: %w", ticker, walletID, err)
	}
	return nil
}

// UpdateWalletName renames a wallet.
func (r *PgxWalletRepository) UpdateWalletName(ctx context.Context, walletID string, name string, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE wallets SET name = $2, last_updated_by = $3, last_updated_at = $4
		WHERE wallet_id = $1;
	`, walletID, name, updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to rename wallet %s: %w", walletID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("wallet %s not found", walletID))
	}
	return nil
}

// UpdateWalletClassroom attaches a wallet to a classroom.
func (r *PgxWalletRepository) UpdateWalletClassroom(ctx context.Context, walletID string, classroomID string, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE wallets SET classroom_id = $2, last_updated_by = $3, last_updated_at = $4
		WHERE wallet_id = $1;
	`, walletID, classroomID, updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to set classroom for wallet %s: %w", walletID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("wallet %s not found", walletID))
	}
	return nil
}

func (r *PgxWalletRepository) AddWalletAdmin(ctx context.Context, walletID string, userID string) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO wallet_admins (wallet_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, walletID, userID)
	if err != nil {
		return fmt.Errorf("failed to add wallet admin: %w", err)
	}
	return nil
}

func (r *PgxWalletRepository) RemoveWalletAdmin(ctx context.Context, walletID string, userID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM wallet_admins WHERE wallet_id = $1 AND user_id = $2;`, walletID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove wallet admin: %w", err)
	}
	return nil
}

func (r *PgxWalletRepository) AddWalletMember(ctx context.Context, walletID string, userID string) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO wallet_members (wallet_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, walletID, userID)
	if err != nil {
		return fmt.Errorf("failed to add wallet member: %w", err)
	}
	return nil
}

func (r *PgxWalletRepository) RemoveWalletMember(ctx context.Context, walletID string, userID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM wallet_members WHERE wallet_id = $1 AND user_id = $2;`, walletID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove wallet member: %w", err)
	}
	return nil
}
