package cached

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-service/internal/adapter/cache"
	domain "user-service/internal/domain/user"
	"user-service/internal/usecase/user"
	"user-service/pkg/logger"
)

// UserRepository decorates a user.Repository with a cache-aside read path.
type UserRepository struct {
	next  user.Repository
	cache cache.UserCache
	log   *zap.Logger
	group singleflight.Group
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository wraps next. A nil cache disables caching.
func NewUserRepository(next user.Repository, c cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		next:  next,
		cache: c,
		log:   log,
	}
}

// Create delegates to the wrapped repository.
func (r *UserRepository) Create(ctx context.Context, in domain.CreateInput) (*domain.User, error) {
	return r.next.Create(ctx, in)
}

// FindMany delegates to the wrapped repository.
func (r *UserRepository) FindMany(ctx context.Context) ([]domain.User, error) {
	return r.next.FindMany(ctx)
}

// FindUnique serves from cache when possible. Concurrent misses for the same id
// share a single storage call that outlives any one caller's cancellation.
// Absent users are never cached.
func (r *UserRepository) FindUnique(ctx context.Context, id int64) (*domain.User, error) {
	if r.cache == nil {
		return r.next.FindUnique(ctx, id)
	}
	log := logger.WithContext(ctx, r.log)

	cachedUser, err := r.cache.Get(ctx, id)
	if err != nil {
		log.Warn("cache get error, falling back to storage", zap.Int64("id", id), zap.Error(err))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	ch := r.group.DoChan(flightKey(id), func() (any, error) {
		return r.load(context.WithoutCancel(ctx), id)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		log.Debug("user lookup shared across concurrent requests", zap.Int64("id", id))
	}

	u, _ := res.Val.(*domain.User)
	if u == nil {
		return nil, nil
	}
	// Callers may mutate the result; shared results must not alias.
	cp := *u
	return &cp, nil
}

// load reads through to storage. The cache write is dropped if the id was
// invalidated after the version was read.
func (r *UserRepository) load(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.WithContext(ctx, r.log)

	version, verErr := r.cache.Version(ctx, id)
	if verErr != nil {
		log.Warn("cache version unavailable, skipping cache fill", zap.Int64("id", id), zap.Error(verErr))
	}

	u, err := r.next.FindUnique(ctx, id)
	if err != nil || u == nil || verErr != nil {
		return u, err
	}

	if _, err := r.cache.Set(ctx, u, version); err != nil {
		log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
	}
	return u, nil
}

// Update writes through and invalidates the cached entry.
func (r *UserRepository) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.User, error) {
	u, err := r.next.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id, "update")
	return u, nil
}

// Delete removes through and invalidates the cached entry.
func (r *UserRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	u, err := r.next.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id, "delete")
	return u, nil
}

func (r *UserRepository) invalidate(ctx context.Context, id int64, op string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		logger.WithContext(ctx, r.log).Warn("failed to invalidate cache",
			zap.String("op", op), zap.Int64("id", id), zap.Error(err))
	}
	// Lookups started after the write must not join a flight that read the old row.
	r.group.Forget(flightKey(id))
}

func flightKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
