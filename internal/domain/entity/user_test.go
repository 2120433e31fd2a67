package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
)

func mustUser(t *testing.T, id vo.ID, email, plain string) *User {
	t.Helper()
	e, err := vo.NewEmail(email)
	require.NoError(t, err)
	p, err := vo.NewPasswordFromPlainText(plain)
	require.NoError(t, err)
	return NewUser(id, e, p)
}

func TestNewUser(t *testing.T) {
	id := vo.GenerateID()
	u := mustUser(t, id, "test@example.com", "TestPass123_")

	assert.True(t, u.ID().Equal(id))
	assert.Equal(t, "test@example.com", u.Email().String())
	assert.True(t, u.Password().Matches("TestPass123_"))
}

func TestUser_Equal(t *testing.T) {
	id := vo.GenerateID()
	a := mustUser(t, id, "test@example.com", "TestPass123_")
	b := mustUser(t, id, "test@example.com", "TestPass123_")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a, b)

	otherEmail := mustUser(t, id, "other@example.com", "TestPass123_")
	assert.False(t, a.Equal(otherEmail))
	assert.True(t, a.SameIdentity(otherEmail))

	otherID := mustUser(t, vo.GenerateID(), "test@example.com", "TestPass123_")
	assert.False(t, a.Equal(otherID))
	assert.False(t, a.SameIdentity(otherID))
}

func TestUser_NilComparisons(t *testing.T) {
	var nilUser *User
	u := mustUser(t, vo.GenerateID(), "test@example.com", "TestPass123_")

	assert.True(t, nilUser.Equal(nil))
	assert.False(t, u.Equal(nil))
	assert.False(t, u.SameIdentity(nil))
}
