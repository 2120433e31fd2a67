package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-registration/internal/domain/repository/repositorytest"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUserRepository_Contract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.UserRepository {
		return NewUserRepository(openTestDB(t))
	})
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	ctx := context.Background()

	db, err := Open(ctx, path)
	require.NoError(t, err)
	u := repositorytest.NewUser(t, "kept@example.com")
	require.NoError(t, NewUserRepository(db).Save(ctx, u))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	got, err := NewUserRepository(db).FindByID(ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, u.Equal(got))
}

func TestUserRepository_DuplicateEmailOnNewID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	require.NoError(t, repo.Save(ctx, repositorytest.NewUser(t, "same@example.com")))
	err := repo.Save(ctx, repositorytest.NewUser(t, "same@example.com"))

	assert.ErrorIs(t, err, repository.ErrStorage)
	assert.ErrorIs(t, err, repository.ErrEmailConflict)
}

func TestUserRepository_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	emails := []string{"c@example.com", "a@example.com", "b@example.com"}
	for _, e := range emails {
		require.NoError(t, repo.Save(ctx, repositorytest.NewUser(t, e)))
	}
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, e := range emails {
		assert.Equal(t, e, all[i].Email().String())
	}
}

func TestUserRepository_CorruptRow(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	id := vo.GenerateID().String()
	_, err := db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`,
		id, "not-an-email", "0000000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)

	parsed, err := vo.ParseID(id)
	require.NoError(t, err)
	_, err = NewUserRepository(db).FindByID(ctx, parsed)
	assert.ErrorIs(t, err, repository.ErrStorage)
}

func TestUserRepository_ClosedDB(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())

	_, err := NewUserRepository(db).FindAll(context.Background())
	assert.ErrorIs(t, err, repository.ErrStorage)
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	digest := "0000000000000000000000000000000000000000000000000000000000000000"
	insert := `INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`

	_, err := db.ExecContext(ctx, insert, vo.GenerateID().String(), "a@example.com", digest)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, vo.GenerateID().String(), "a@example.com", digest)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err), "duplicate email")

	_, err = db.ExecContext(ctx, insert, vo.GenerateID().String(), "b@example.com", "short")
	require.Error(t, err)
	assert.False(t, isUniqueViolation(err), "check constraint")

	_, err = db.ExecContext(ctx, insert, vo.GenerateID().String(), nil, digest)
	require.Error(t, err)
	assert.False(t, isUniqueViolation(err), "not null constraint")
}

func TestUserRepository_OtherConstraintIsNotEmailConflict(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := db.ExecContext(ctx, `
		CREATE TRIGGER users_block BEFORE INSERT ON users
		WHEN NEW.email = 'blocked@example.com'
		BEGIN SELECT RAISE(ABORT, 'blocked'); END`)
	require.NoError(t, err)

	err = NewUserRepository(db).Save(ctx, repositorytest.NewUser(t, "blocked@example.com"))
	assert.ErrorIs(t, err, repository.ErrStorage)
	assert.NotErrorIs(t, err, repository.ErrEmailConflict)
}
