package valueobject

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const msgInvalidEmail = "Invalid email format"

// validate caches struct and tag metadata, so a single instance is shared.
var validate = validator.New()

// Email is a well-formed address. Values are only obtainable through NewEmail.
type Email struct {
	value string
}

// NewEmail accepts local@domain.tld shapes: one "@", a non-empty local part,
// a dotted domain and no whitespace. The input is kept verbatim as the normalized form.
func NewEmail(raw string) (Email, error) {
	if !isWellFormedEmail(raw) {
		return Email{}, NewValidationError(msgInvalidEmail)
	}
	return Email{value: raw}, nil
}

func isWellFormedEmail(raw string) bool {
	if raw == "" || strings.ContainsFunc(raw, unicode.IsSpace) {
		return false
	}
	if strings.Count(raw, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(raw, "@")
	if local == "" || !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return validate.Var(raw, "email") == nil
}

func (e Email) String() string { return e.value }

func (e Email) Equal(other Email) bool { return e.value == other.value }

func (e Email) IsZero() bool { return e.value == "" }
