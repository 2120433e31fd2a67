package valueobject

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	digestHexLength   = sha256.Size * 2
)

type passwordRule struct {
	ok  func(string) bool
	msg string
}

// Order matters: violations are reported in this order.
var passwordRules = []passwordRule{
	{func(s string) bool { return utf8.RuneCountInString(s) >= minPasswordLength }, "Password is too short"},
	{containsAny("0123456789"), "Password must contain a number"},
	{containsAny("abcdefghijklmnopqrstuvwxyz"), "Password must contain a lowercase letter"},
	{containsAny("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), "Password must contain an uppercase letter"},
	{containsAny("_"), "Password must contain an underscore"},
}

func containsAny(chars string) func(string) bool {
	return func(s string) bool { return strings.ContainsAny(s, chars) }
}

// Password holds the SHA-256 digest of a plaintext password, never the plaintext.
type Password struct {
	digest string
}

// NewPasswordFromPlainText checks every rule before failing, so the error lists all
// violations joined by ", ".
func NewPasswordFromPlainText(raw string) (Password, error) {
	var violations []string
	for _, r := range passwordRules {
		if !r.ok(raw) {
			violations = append(violations, r.msg)
		}
	}
	if len(violations) > 0 {
		return Password{}, NewValidationError(strings.Join(violations, ", "))
	}
	return Password{digest: digestOf(raw)}, nil
}

// PasswordFromDigest rebuilds a Password from a stored hex digest.
func PasswordFromDigest(digest string) (Password, error) {
	if len(digest) != digestHexLength {
		return Password{}, NewValidationError("Invalid password digest")
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return Password{}, NewValidationError("Invalid password digest")
	}
	return Password{digest: strings.ToLower(digest)}, nil
}

func digestOf(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// String returns the 64-char lowercase hex digest.
func (p Password) String() string { return p.digest }

// IsZero reports a Password that was never built by a constructor.
func (p Password) IsZero() bool { return p.digest == "" }

func (p Password) Equal(other Password) bool {
	return subtle.ConstantTimeCompare([]byte(p.digest), []byte(other.digest)) == 1
}

// Matches reports whether plain digests to the stored value.
func (p Password) Matches(plain string) bool {
	return p.Equal(Password{digest: digestOf(plain)})
}
