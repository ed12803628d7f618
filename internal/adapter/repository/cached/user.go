package cached

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"library-service/internal/adapter/cache"
	domain "library-service/internal/domain/user"
	"library-service/internal/usecase/user"
	apperrors "library-service/pkg/errors"
)

// CachedUserRepository implements user.Repository with a cache-aside read path
// for GetByID. Writes go to the database first and then drop the cached entry.
//
// A user whose entry could not be dropped is marked stale and read from the
// database until a later delete of the entry succeeds. Loads that overlap a
// write never leave their result in the cache.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group

	writes atomic.Uint64
	stale  sync.Map // int64 -> struct{}
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByID returns the cached user when it can be trusted, otherwise loads it
// from the database once per key and caches the result.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u := r.cached(ctx, id); u != nil {
		return u, nil
	}

	result, err, _ := r.group.Do(fmt.Sprintf("user:%d", id), func() (any, error) {
		// Another caller may have filled the cache while we waited.
		if u := r.cached(ctx, id); u != nil {
			return u, nil
		}

		gen := r.writes.Load()
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		r.fill(ctx, u, gen)
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers mutate the result, so never hand out the shared instance.
	u := *result.(*domain.User)
	return &u, nil
}

// FindByName delegates to the DB repository.
func (r *CachedUserRepository) FindByName(ctx context.Context, name string) ([]domain.User, error) {
	return r.dbRepo.FindByName(ctx, name)
}

// Update writes the user and drops its cache entry. A NotFoundError also drops
// the entry, since whatever was cached no longer exists.
func (r *CachedUserRepository) Update(ctx context.Context, u *domain.User) (int64, error) {
	id, err := r.dbRepo.Update(ctx, u)
	if err != nil {
		var notFound *apperrors.NotFoundError
		if errors.As(err, &notFound) {
			r.invalidate(ctx, u.ID, "update")
		}
		return 0, err
	}

	r.invalidate(ctx, u.ID, "update")
	return id, nil
}

// Delete deletes the user from DB and drops its cache entry.
func (r *CachedUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	deletedID, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	r.invalidate(ctx, id, "delete")
	return deletedID, nil
}

// List delegates to the DB repository.
func (r *CachedUserRepository) List(ctx context.Context, query string) ([]domain.User, error) {
	return r.dbRepo.List(ctx, query)
}

// cached returns the cache hit for id, or nil on a miss, a cache error or a
// stale entry that still cannot be dropped.
func (r *CachedUserRepository) cached(ctx context.Context, id int64) *domain.User {
	if r.cache == nil {
		return nil
	}

	if _, stale := r.stale.Load(id); stale {
		if err := r.cache.Delete(ctx, id); err != nil {
			r.log.Warn("stale cache entry still present, reading database", zap.Int64("id", id), zap.Error(err))
			return nil
		}
		r.stale.Delete(id)
		return nil
	}

	u, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
		return nil
	}
	if u != nil {
		r.log.Debug("user retrieved from cache", zap.Int64("id", id))
	}
	return u
}

// fill caches u unless a write happened since gen was taken. The second check
// catches a write that lands between the first check and Set.
func (r *CachedUserRepository) fill(ctx context.Context, u *domain.User, gen uint64) {
	if r.cache == nil {
		return
	}
	if _, stale := r.stale.Load(u.ID); stale || r.writes.Load() != gen {
		return
	}

	if err := r.cache.Set(ctx, u); err != nil {
		r.log.Warn("failed to cache user", zap.Int64("id", u.ID), zap.Error(err))
		return
	}
	if r.writes.Load() != gen {
		r.invalidate(ctx, u.ID, "concurrent write")
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id int64, op string) {
	r.writes.Add(1)
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		r.stale.Store(id, struct{}{})
		r.log.Warn("failed to invalidate cache after "+op+", serving from database", zap.Int64("id", id), zap.Error(err))
		return
	}
	r.stale.Delete(id)
}
