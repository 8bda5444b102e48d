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

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, first_name, last_name, account_type, public, password_hash, created_at, created_by, last_updated_at, last_updated_by`

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, email, first_name, last_name, account_type, public, password_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.FirstName,
		user.LastName,
		string(user.AccountType),
		user.Public,
		user.PasswordHash,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, `WHERE user_id = $1`, userID)
}

// FindUserByEmail retrieves a user by email.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, `WHERE email = $1`, email)
}

func (r *PgxUserRepository) findUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users %s;`, userColumns, where)

	var user domain.User
	var accountType string
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&user.UserID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&accountType,
		&user.Public,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.LastUpdatedAt,
		&user.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.AccountType = domain.AccountType(accountType)

	user.Following, err = r.loadFollowing(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PgxUserRepository) loadFollowing(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT blockchain_id FROM user_following WHERE user_id = $1 ORDER BY blockchain_id;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user following: %w", err)
	}
	following, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan user following: %w", err)
	}
	return following, nil
}

// FindUsersByIDs retrieves a batch of users keyed by ID. Unknown IDs are
// simply absent from the result.
func (r *PgxUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	result := make(map[string]domain.User, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = ANY($1);`, userColumns)
	rows, err := r.Pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user domain.User
		var accountType string
		err := rows.Scan(
			&user.UserID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&accountType,
			&user.Public,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.CreatedBy,
			&user.LastUpdatedAt,
			&user.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.AccountType = domain.AccountType(accountType)
		result[user.UserID] = user
	}
	return result, rows.Err()
}

// UpdateUser writes profile fields back. Email and password hash are
// immutable through this method.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, account_type = $4, public = $5, last_updated_at = $6, last_updated_by = $7
		WHERE user_id = $1;
	`, user.UserID, user.FirstName, user.LastName, string(user.AccountType), user.Public, user.LastUpdatedAt, user.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", user.UserID))
	}
	return nil
}

func (r *PgxUserRepository) FollowBlockchain(ctx context.Context, userID string, blockchainID string) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO user_following (user_id, blockchain_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, userID, blockchainID)
	if err != nil {
		return fmt.Errorf("failed to follow blockchain: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) UnfollowBlockchain(ctx context.Context, userID string, blockchainID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM user_following WHERE user_id = $1 AND blockchain_id = $2;`, userID, blockchainID)
	if err != nil {
		return fmt.Errorf("failed to unfollow blockchain: %w", err)
	}
	return nil
}
