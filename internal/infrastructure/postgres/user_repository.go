package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-ddd-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
)

const uniqueViolation = "23505"

// DBTX is the subset of pgxpool.Pool (and pgx.Tx) the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository stores users in the users table.
// The email column is unique, so Save fails with repository.ErrEmailConflict when
// another ID already owns the email.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	if err := repository.CheckSavable(u); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email, password_hash = EXCLUDED.password_hash, updated_at = now()
	`, u.ID().UUID(), u.Email().String(), u.Password().String())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %w", repository.ErrStorage, repository.ErrEmailConflict)
		}
		return fmt.Errorf("%w: save user: %w", repository.ErrStorage, err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id vo.ID) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id::text, email, password_hash
		FROM users
		WHERE id = $1
	`, id.UUID())
	return scanOne(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email vo.Email) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id::text, email, password_hash
		FROM users
		WHERE email = $1
	`, email.String())
	return scanOne(row)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, email, password_hash
		FROM users
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", repository.ErrStorage, err)
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		var rec userRecord
		if err := rows.Scan(&rec.id, &rec.email, &rec.passwordHash); err != nil {
			return nil, fmt.Errorf("%w: scan user: %w", repository.ErrStorage, err)
		}
		u, err := rec.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list users: %w", repository.ErrStorage, err)
	}
	return out, nil
}

func (r *UserRepository) Remove(ctx context.Context, u *entity.User) error {
	if u == nil {
		return nil
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, u.ID().UUID()); err != nil {
		return fmt.Errorf("%w: remove user: %w", repository.ErrStorage, err)
	}
	return nil
}

type userRecord struct {
	id           string
	email        string
	passwordHash string
}

func (rec userRecord) toEntity() (*entity.User, error) {
	id, err := vo.ParseID(rec.id)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt row: %w", repository.ErrStorage, err)
	}
	email, err := vo.NewEmail(rec.email)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt row %s: %w", repository.ErrStorage, rec.id, err)
	}
	pwd, err := vo.PasswordFromDigest(rec.passwordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt row %s: %w", repository.ErrStorage, rec.id, err)
	}
	return entity.NewUser(id, email, pwd), nil
}

func scanOne(row pgx.Row) (*entity.User, error) {
	var rec userRecord
	if err := row.Scan(&rec.id, &rec.email, &rec.passwordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find user: %w", repository.ErrStorage, err)
	}
	return rec.toEntity()
}

var _ repository.UserRepository = (*UserRepository)(nil)
