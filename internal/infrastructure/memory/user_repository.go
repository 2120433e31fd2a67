package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/go-ddd-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
)

// UserRepository keeps users in process memory for the lifetime of the value.
// Save is last-write-wins by ID and does not reject a duplicate email; callers
// check FindByEmail first. FindAll returns users in first-insertion order.
type UserRepository struct {
	mu    sync.RWMutex
	users map[vo.ID]*entity.User
	order []vo.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[vo.ID]*entity.User)}
}

func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	if err := repository.CheckSavable(u); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		r.order = append(r.order, u.ID())
	}
	r.users[u.ID()] = u
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id vo.ID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email vo.Email) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if u := r.users[id]; u.Email().Equal(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

func (r *UserRepository) Remove(_ context.Context, u *entity.User) error {
	if u == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return nil
	}
	delete(r.users, u.ID())
	for i, id := range r.order {
		if id == u.ID() {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
