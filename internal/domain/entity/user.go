package entity

import (
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
)

// User is the aggregate root for the registration domain.
// Field values are validated by their own value objects, so User adds no checks
// and exposes no mutators.
type User struct {
	id       vo.ID
	email    vo.Email
	password vo.Password
}

func NewUser(id vo.ID, email vo.Email, password vo.Password) *User {
	return &User{id: id, email: email, password: password}
}

func (u *User) ID() vo.ID             { return u.id }
func (u *User) Email() vo.Email       { return u.email }
func (u *User) Password() vo.Password { return u.password }

// Equal compares every field. Use SameIdentity for domain identity.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.id.Equal(other.id) && u.email.Equal(other.email) && u.password.Equal(other.password)
}

// SameIdentity reports whether both users share an ID.
func (u *User) SameIdentity(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	return u.id.Equal(other.id)
}
