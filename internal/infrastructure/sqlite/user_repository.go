package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/oksasatya/go-ddd-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
)

// UserRepository stores users in a single-file SQLite database. Like the
// Postgres backend, the email column is unique.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	if err := repository.CheckSavable(u); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET email = excluded.email,
		    password_hash = excluded.password_hash,
		    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, u.ID().String(), u.Email().String(), u.Password().String())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", repository.ErrStorage, repository.ErrEmailConflict)
		}
		return fmt.Errorf("%w: save user: %w", repository.ErrStorage, err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id vo.ID) (*entity.User, error) {
	return scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM users WHERE id = ?`, id.String()))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email vo.Email) (*entity.User, error) {
	return scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM users WHERE email = ?`, email.String()))
}

// FindAll returns users in insertion order.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, email, password_hash FROM users ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", repository.ErrStorage, err)
	}
	defer rows.Close()

	out := []*entity.User{}
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
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, u.ID().String()); err != nil {
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

func scanOne(row *sql.Row) (*entity.User, error) {
	var rec userRecord
	if err := row.Scan(&rec.id, &rec.email, &rec.passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find user: %w", repository.ErrStorage, err)
	}
	return rec.toEntity()
}

// isUniqueViolation reports a UNIQUE violation. The id conflict is absorbed by
// the upsert, so only the email column can raise one. CHECK and NOT NULL
// failures stay plain storage errors.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

var _ repository.UserRepository = (*UserRepository)(nil)
