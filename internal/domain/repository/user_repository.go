package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-ddd-user-registration/internal/domain/entity"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
)

var (
	// ErrStorage wraps every infrastructure fault a backend returns.
	ErrStorage = errors.New("storage failure")
	// ErrEmailConflict is returned by backends that reject a second ID for an email on Save.
	ErrEmailConflict = errors.New("email already stored for another user")
	// ErrInvalidUser is returned by Save for a user that could not be read back.
	ErrInvalidUser = errors.New("invalid user")
)

// CheckSavable rejects a nil user and users carrying zero-value fields. Every
// backend calls it first so they all refuse the same inputs.
func CheckSavable(u *entity.User) error {
	switch {
	case u == nil:
		return fmt.Errorf("%w: %w: nil", ErrStorage, ErrInvalidUser)
	case u.ID().IsZero():
		return fmt.Errorf("%w: %w: zero id", ErrStorage, ErrInvalidUser)
	case u.Email().IsZero():
		return fmt.Errorf("%w: %w: empty email", ErrStorage, ErrInvalidUser)
	case u.Password().IsZero():
		return fmt.Errorf("%w: %w: empty password digest", ErrStorage, ErrInvalidUser)
	}
	return nil
}

// UserRepository defines the persistence boundary for users.
// Lookups return (nil, nil) when nothing matches; a missing user is not an error.
type UserRepository interface {
	// Save inserts the user or replaces the one stored under the same ID.
	Save(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id vo.ID) (*entity.User, error)
	FindByEmail(ctx context.Context, email vo.Email) (*entity.User, error)
	// FindAll returns every stored user exactly once.
	FindAll(ctx context.Context) ([]*entity.User, error)
	// Remove deletes by the user's ID. Removing an absent user is a no-op.
	Remove(ctx context.Context, u *entity.User) error
}
