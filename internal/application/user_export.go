package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	repo "github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
)

type exportedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ExportUsers writes every stored user to w as one {"id","email"} JSON object per
// line and returns how many were written. Password digests are never exported.
func ExportUsers(ctx context.Context, users repo.UserRepository, w io.Writer) (int, error) {
	all, err := users.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}
	enc := json.NewEncoder(w)
	for i, u := range all {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := enc.Encode(exportedUser{ID: u.ID().String(), Email: u.Email().String()}); err != nil {
			return i, fmt.Errorf("write user %s: %w", u.ID().String(), err)
		}
	}
	return len(all), nil
}
