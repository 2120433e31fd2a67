// Package repositorytest holds the behavioral suite every UserRepository backend must pass.
// The in-memory repository is the reference; other backends run the same cases.
package repositorytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
)

// Factory returns an empty repository for each case.
type Factory func(t *testing.T) repository.UserRepository

// NewUser builds a valid user with the given email and a fixed strong password.
func NewUser(t *testing.T, email string) *entity.User {
	t.Helper()
	e, err := vo.NewEmail(email)
	require.NoError(t, err)
	p, err := vo.NewPasswordFromPlainText("TestPass123_")
	require.NoError(t, err)
	return entity.NewUser(vo.GenerateID(), e, p)
}

func mustEmail(t *testing.T, raw string) vo.Email {
	t.Helper()
	e, err := vo.NewEmail(raw)
	require.NoError(t, err)
	return e
}

// Run executes the shared cases against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	ctx := context.Background()

	t.Run("saves and finds a user by id", func(t *testing.T) {
		repo := newRepo(t)
		u := NewUser(t, "test@example.com")
		require.NoError(t, repo.Save(ctx, u))

		got, err := repo.FindByID(ctx, u.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, u.Equal(got))
	})

	t.Run("does not find an unknown id", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.FindByID(ctx, vo.GenerateID())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("saves and finds a user by email", func(t *testing.T) {
		repo := newRepo(t)
		u := NewUser(t, "test@example.com")
		require.NoError(t, repo.Save(ctx, u))

		got, err := repo.FindByEmail(ctx, mustEmail(t, "test@example.com"))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, u.Equal(got))
	})

	t.Run("does not find an unknown email", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, NewUser(t, "test@example.com")))

		got, err := repo.FindByEmail(ctx, mustEmail(t, "nonexistent@example.com"))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("finds all users", func(t *testing.T) {
		repo := newRepo(t)
		u1 := NewUser(t, "test@example.com")
		u2 := NewUser(t, "test2@example.com")
		require.NoError(t, repo.Save(ctx, u1))
		require.NoError(t, repo.Save(ctx, u2))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.True(t, containsUser(all, u1))
		assert.True(t, containsUser(all, u2))

		got1, err := repo.FindByEmail(ctx, u1.Email())
		require.NoError(t, err)
		assert.True(t, u1.Equal(got1))
		got2, err := repo.FindByEmail(ctx, u2.Email())
		require.NoError(t, err)
		assert.True(t, u2.Equal(got2))
	})

	t.Run("empty repository", func(t *testing.T) {
		repo := newRepo(t)
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		byEmail, err := repo.FindByEmail(ctx, mustEmail(t, "test@example.com"))
		require.NoError(t, err)
		assert.Nil(t, byEmail)
	})

	t.Run("save replaces the user stored under the same id", func(t *testing.T) {
		repo := newRepo(t)
		u := NewUser(t, "old@example.com")
		require.NoError(t, repo.Save(ctx, u))

		replacement := entity.NewUser(u.ID(), mustEmail(t, "new@example.com"), u.Password())
		require.NoError(t, repo.Save(ctx, replacement))

		got, err := repo.FindByID(ctx, u.ID())
		require.NoError(t, err)
		assert.True(t, replacement.Equal(got))

		old, err := repo.FindByEmail(ctx, mustEmail(t, "old@example.com"))
		require.NoError(t, err)
		assert.Nil(t, old)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("removes a user and keeps the others", func(t *testing.T) {
		repo := newRepo(t)
		u1 := NewUser(t, "test@example.com")
		u2 := NewUser(t, "test2@example.com")
		require.NoError(t, repo.Save(ctx, u1))
		require.NoError(t, repo.Save(ctx, u2))

		require.NoError(t, repo.Remove(ctx, u1))

		gone, err := repo.FindByID(ctx, u1.ID())
		require.NoError(t, err)
		assert.Nil(t, gone)

		kept, err := repo.FindByID(ctx, u2.ID())
		require.NoError(t, err)
		assert.True(t, u2.Equal(kept))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("rejects users with zero-value fields", func(t *testing.T) {
		repo := newRepo(t)
		valid := NewUser(t, "test@example.com")

		cases := map[string]*entity.User{
			"nil user":     nil,
			"zero id":      entity.NewUser(vo.ID{}, valid.Email(), valid.Password()),
			"empty email":  entity.NewUser(vo.GenerateID(), vo.Email{}, valid.Password()),
			"empty digest": entity.NewUser(vo.GenerateID(), valid.Email(), vo.Password{}),
		}
		for name, u := range cases {
			err := repo.Save(ctx, u)
			assert.ErrorIs(t, err, repository.ErrStorage, name)
			assert.ErrorIs(t, err, repository.ErrInvalidUser, name)
			assert.NotErrorIs(t, err, repository.ErrEmailConflict, name)
		}

		zero, err := repo.FindByID(ctx, vo.ID{})
		require.NoError(t, err)
		assert.Nil(t, zero)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("removing an absent user is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		u := NewUser(t, "test@example.com")
		require.NoError(t, repo.Save(ctx, u))

		require.NoError(t, repo.Remove(ctx, NewUser(t, "ghost@example.com")))
		require.NoError(t, repo.Remove(ctx, u))
		require.NoError(t, repo.Remove(ctx, u))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func containsUser(all []*entity.User, want *entity.User) bool {
	for _, u := range all {
		if want.Equal(u) {
			return true
		}
	}
	return false
}
