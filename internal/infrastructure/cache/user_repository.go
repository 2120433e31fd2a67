package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-user-registration/pkg/helpers"
)

const defaultTTL = 10 * time.Minute

func userKey(id vo.ID) string    { return "user:id:" + id.String() }
func versionKey(id vo.ID) string { return "user:ver:" + id.String() }

// UserRepository is a read-through cache in front of another UserRepository.
// FindByID is served from Redis when possible; writes go to the inner repository
// first, then bump the user's version and drop the cached entry. A refill only
// lands if the version it read before the inner lookup is still current, so a
// lookup racing a write cannot restore the old row. Redis errors never fail a call.
type UserRepository struct {
	inner  repository.UserRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *logrus.Logger
}

func NewUserRepository(inner repository.UserRepository, rdb redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *UserRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &UserRepository{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

type cachedUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

func (c cachedUser) toEntity() (*entity.User, error) {
	id, err := vo.ParseID(c.ID)
	if err != nil {
		return nil, err
	}
	email, err := vo.NewEmail(c.Email)
	if err != nil {
		return nil, err
	}
	pwd, err := vo.PasswordFromDigest(c.PasswordHash)
	if err != nil {
		return nil, err
	}
	return entity.NewUser(id, email, pwd), nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	if err := r.inner.Save(ctx, u); err != nil {
		return err
	}
	r.invalidate(ctx, u.ID())
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id vo.ID) (*entity.User, error) {
	var c cachedUser
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, userKey(id), &c)
	if err != nil {
		r.warn(err, id, "user cache read failed")
	} else if hit {
		if u, convErr := c.toEntity(); convErr == nil {
			return u, nil
		}
		r.invalidate(ctx, id)
	}

	version, verErr := helpers.RedisGetString(ctx, r.rdb, versionKey(id), "0")
	u, err := r.inner.FindByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	if verErr != nil {
		r.warn(verErr, id, "user cache version read failed")
		return u, nil
	}
	entry := cachedUser{ID: u.ID().String(), Email: u.Email().String(), PasswordHash: u.Password().String()}
	if _, err := helpers.RedisSetJSONIf(ctx, r.rdb, userKey(id), versionKey(id), version, entry, r.ttl); err != nil {
		r.warn(err, id, "user cache write failed")
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email vo.Email) (*entity.User, error) {
	return r.inner.FindByEmail(ctx, email)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	return r.inner.FindAll(ctx)
}

func (r *UserRepository) Remove(ctx context.Context, u *entity.User) error {
	if err := r.inner.Remove(ctx, u); err != nil {
		return err
	}
	if u != nil {
		r.invalidate(ctx, u.ID())
	}
	return nil
}

func (r *UserRepository) invalidate(ctx context.Context, id vo.ID) {
	if err := r.rdb.Incr(ctx, versionKey(id)).Err(); err != nil {
		r.warn(err, id, "user cache version bump failed")
	} else {
		// the version only needs to outlive a refill in flight
		r.rdb.Expire(ctx, versionKey(id), r.ttl)
	}
	if err := helpers.RedisDel(ctx, r.rdb, userKey(id)); err != nil {
		r.warn(err, id, "user cache invalidate failed")
	}
}

func (r *UserRepository) warn(err error, id vo.ID, msg string) {
	if r.logger != nil {
		r.logger.WithError(err).WithField("user_id", id.String()).Warn(msg)
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
