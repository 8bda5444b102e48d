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
)

type PgxClassroomRepository struct {
	BaseRepository
}

// newPgxClassroomRepository creates a new repository for classroom data.
func newPgxClassroomRepository(pool *pgxpool.Pool) portsrepo.ClassroomRepositoryFacade {
	return &PgxClassroomRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ClassroomRepositoryFacade = (*PgxClassroomRepository)(nil)

const classroomColumns = `classroom_id, name, auto_wallet_id, created_at, created_by, last_updated_at, last_updated_by`

// SaveClassroom inserts a classroom together with its admin and student rows.
func (r *PgxClassroomRepository) SaveClassroom(ctx context.Context, classroom domain.Classroom) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO classrooms (classroom_id, name, auto_wallet_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, classroom.ClassroomID, classroom.Name, classroom.AutoWalletID, classroom.CreatedAt, classroom.CreatedBy, classroom.LastUpdatedAt, classroom.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: classroom %s", apperrors.ErrDuplicate, classroom.ClassroomID)
		}
		return fmt.Errorf("failed to save classroom %s: %w", classroom.ClassroomID, err)
	}

	for _, userID := range classroom.Admins {
		if _, err := tx.Exec(ctx, `INSERT INTO classroom_admins (classroom_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, classroom.ClassroomID, userID); err != nil {
			return fmt.Errorf("failed to save classroom admin: %w", err)
		}
	}
	for _, userID := range classroom.Students {
		if _, err := tx.Exec(ctx, `INSERT INTO classroom_students (classroom_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, classroom.ClassroomID, userID); err != nil {
			return fmt.Errorf("failed to save classroom student: %w", err)
		}
	}
	for _, code := range classroom.JoinCodes {
		if _, err := tx.Exec(ctx, `INSERT INTO classroom_codes (code, classroom_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, code, classroom.ClassroomID); err != nil {
			return fmt.Errorf("failed to save classroom code: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindClassroomByID retrieves a classroom with its membership and codes.
func (r *PgxClassroomRepository) FindClassroomByID(ctx context.Context, classroomID string) (*domain.Classroom, error) {
	query := fmt.Sprintf(`SELECT %s FROM classrooms WHERE classroom_id = $1;`, classroomColumns)
	return r.scanClassroom(ctx, query, classroomID)
}

// FindClassroomByCode resolves a join code to its classroom.
func (r *PgxClassroomRepository) FindClassroomByCode(ctx context.Context, code string) (*domain.Classroom, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM classrooms
		WHERE classroom_id = (SELECT classroom_id FROM classroom_codes WHERE code = $1);
	`, classroomColumns)
	return r.scanClassroom(ctx, query, code)
}

func (r *PgxClassroomRepository) scanClassroom(ctx context.Context, query string, arg any) (*domain.Classroom, error) {
	var classroom domain.Classroom
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&classroom.ClassroomID,
		&classroom.Name,
		&classroom.AutoWalletID,
		&classroom.CreatedAt,
		&classroom.CreatedBy,
		&classroom.LastUpdatedAt,
		&classroom.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("classroom not found")
		}
		return nil, fmt.Errorf("failed to find classroom: %w", err)
	}

	if err := r.loadAssociations(ctx, &classroom); err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *PgxClassroomRepository) loadAssociations(ctx context.Context, classroom *domain.Classroom) error {
	var err error

	rows, err := r.Pool.Query(ctx, `SELECT user_id FROM classroom_admins WHERE classroom_id = $1 ORDER BY user_id;`, classroom.ClassroomID)
	if err != nil {
		return fmt.Errorf("failed to query classroom admins: %w", err)
	}
	classroom.Admins, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to scan classroom admins: %w", err)
	}

	rows, err = r.Pool.Query(ctx, `SELECT user_id FROM classroom_students WHERE classroom_id = $1 ORDER BY user_id;`, classroom.ClassroomID)
	if err != nil {
		return fmt.Errorf("failed to query classroom students: %w", err)
	}
	classroom.Students, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to scan classroom students: %w", err)
	}

	rows, err = r.Pool.Query(ctx, `SELECT code FROM classroom_codes WHERE classroom_id = $1 ORDER BY code;`, classroom.ClassroomID)
	if err != nil {
		return fmt.Errorf("failed to query classroom codes: %w", err)
	}
	classroom.JoinCodes, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to scan classroom codes: %w", err)
	}
	return nil
}

// FindClassroomsByUser retrieves every classroom the user administers or
// studies in.
func (r *PgxClassroomRepository) FindClassroomsByUser(ctx context.Context, userID string) ([]domain.Classroom, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM classrooms
		WHERE classroom_id IN (
			SELECT classroom_id FROM classroom_admins WHERE user_id = $1
			UNION
			SELECT classroom_id FROM classroom_students WHERE user_id = $1
		)
		ORDER BY created_at;
	`, classroomColumns)

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query classrooms for user %s: %w", userID, err)
	}
	defer rows.Close()

	classrooms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Classroom, error) {
		var classroom domain.Classroom
		err := row.Scan(
			&classroom.ClassroomID,
			&classroom.Name,
			&classroom.AutoWalletID,
			&classroom.CreatedAt,
			&classroom.CreatedBy,
			&classroom.LastUpdatedAt,
			&classroom.LastUpdatedBy,
		)
		return classroom, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan classrooms: %w", err)
	}

	for i := range classrooms {
		if err := r.loadAssociations(ctx, &classrooms[i]); err != nil {
			return nil, err
		}
	}
	return classrooms, nil
}

// AddJoinCode registers a new join code for the classroom.
func (r *PgxClassroomRepository) AddJoinCode(ctx context.Context, classroomID string, code string) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO classroom_codes (code, classroom_id) VALUES ($1, $2);`, code, classroomID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: join code %s", apperrors.ErrDuplicate, code)
		}
		return fmt.Errorf("failed to add join code: %w", err)
	}
	return nil
}

// UpdateClassroomName renames a classroom.
func (r *PgxClassroomRepository) UpdateClassroomName(ctx context.Context, classroomID string, name string, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE classrooms SET name = $2, last_updated_by = $3, last_updated_at = $4
		WHERE classroom_id = $1;
	`, classroomID, name, updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to rename classroom %s: %w", classroomID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("classroom %s not found", classroomID))
	}
	return nil
}

func (r *PgxClassroomRepository) AddStudent(ctx context.Context, classroomID string, userID string) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO classroom_students (classroom_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, classroomID, userID)
	if err != nil {
		return fmt.Errorf("failed to add classroom student: %w", err)
	}
	return nil
}

func (r *PgxClassroomRepository) RemoveStudent(ctx context.Context, classroomID string, userID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM classroom_students WHERE classroom_id = $1 AND user_id = $2;`, classroomID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove classroom student: %w", err)
	}
	return nil
}

func (r *PgxClassroomRepository) AddClassroomAdmin(ctx context.Context, classroomID string, userID string) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO classroom_admins (classroom_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, classroomID, userID)
	if err != nil {
		return fmt.Errorf("failed to add classroom admin: %w", err)
	}
	return nil
}

func (r *PgxClassroomRepository) RemoveClassroomAdmin(ctx context.Context, classroomID string, userID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM classroom_admins WHERE classroom_id = $1 AND user_id = $2;`, classroomID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove classroom admin: %w", err)
	}
	return nil
}

// DeleteClassroom removes a classroom and its membership and code rows. The
// auto-wallet survives with its balances; only the classroom link is gone.
func (r *PgxClassroomRepository) DeleteClassroom(ctx context.Context, classroomID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, query := range []string{
		`DELETE FROM classroom_codes WHERE classroom_id = $1;`,
		`DELETE FROM classroom_students WHERE classroom_id = $1;`,
		`DELETE FROM classroom_admins WHERE classroom_id = $1;`,
		`UPDATE wallets SET classroom_id = NULL WHERE classroom_id = $1;`,
	} {
		if _, err := tx.Exec(ctx, query, classroomID); err != nil {
			return fmt.Errorf("failed to delete classroom %s: %w", classroomID, err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM classrooms WHERE classroom_id = $1;`, classroomID)
	if err != nil {
		return fmt.Errorf("failed to delete classroom %s: %w", classroomID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("classroom %s not found", classroomID))
	}

	return r.Commit(ctx, tx)
}
