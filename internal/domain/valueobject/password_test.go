package valueobject

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexDigest = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)

func TestNewPasswordFromPlainText_Strong(t *testing.T) {
	p, err := NewPasswordFromPlainText("1234abcdABCD_")
	require.NoError(t, err)
	assert.Len(t, p.String(), 64)
}

func TestNewPasswordFromPlainText_Rules(t *testing.T) {
	tests := []struct {
		name  string
		plain string
		want  string
	}{
		{"too short", "1aA_", "Password is too short"},
		{"missing number", "abcdABCD_", "Password must contain a number"},
		{"missing lowercase", "1234ABCD_", "Password must contain a lowercase letter"},
		{"missing uppercase", "1234abcd_", "Password must contain an uppercase letter"},
		{"missing underscore", "1234abcdABCD", "Password must contain an underscore"},
		{
			"several rules at once",
			"abcd",
			"Password is too short, Password must contain a number, Password must contain an uppercase letter, Password must contain an underscore",
		},
		{
			"empty",
			"",
			"Password is too short, Password must contain a number, Password must contain a lowercase letter, Password must contain an uppercase letter, Password must contain an underscore",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPasswordFromPlainText(tt.plain)
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestNewPasswordFromPlainText_LengthCountsRunes(t *testing.T) {
	// 7 runes, more than 8 bytes
	_, err := NewPasswordFromPlainText("1aA_ééé")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password is too short")
}

func TestPassword_IsHashed(t *testing.T) {
	plain := "1234abcdABCD_"
	p, err := NewPasswordFromPlainText(plain)
	require.NoError(t, err)

	digest := p.String()
	assert.NotEqual(t, plain, digest)
	assert.Len(t, digest, 64)
	assert.True(t, hexDigest.MatchString(digest))
	assert.Equal(t, strings.ToLower(digest), digest)
	// sha256("1234abcdABCD_") must stay stable for stored data.
	assert.Equal(t, digestOf(plain), digest)
}

func TestPassword_Equal(t *testing.T) {
	p1, err := NewPasswordFromPlainText("1234abcdABCD_")
	require.NoError(t, err)
	p2, err := NewPasswordFromPlainText("1234abcdABCD_")
	require.NoError(t, err)
	other, err := NewPasswordFromPlainText("DifferentPass456_")
	require.NoError(t, err)

	assert.True(t, p1.Equal(p2))
	assert.False(t, p1.Equal(other))
}

func TestPassword_Matches(t *testing.T) {
	p, err := NewPasswordFromPlainText("SecurePass123_")
	require.NoError(t, err)

	assert.True(t, p.Matches("SecurePass123_"))
	assert.False(t, p.Matches("SecurePass123"))
}

func TestPasswordFromDigest(t *testing.T) {
	p, err := NewPasswordFromPlainText("SecurePass123_")
	require.NoError(t, err)

	restored, err := PasswordFromDigest(strings.ToUpper(p.String()))
	require.NoError(t, err)
	assert.True(t, restored.Equal(p))
	assert.Equal(t, p.String(), restored.String())

	for _, bad := range []string{"", "abc", strings.Repeat("z", 64), "SecurePass123_"} {
		_, err := PasswordFromDigest(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestPassword_IsZero(t *testing.T) {
	assert.True(t, Password{}.IsZero())
	p, err := NewPasswordFromPlainText("TestPass123_")
	require.NoError(t, err)
	assert.False(t, p.IsZero())
}
