package cached

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"library-service/internal/adapter/cache"
	domain "library-service/internal/domain/book"
	"library-service/internal/usecase/book"
)

// CachedBookRepository serves book statistics from cache and drops them
// whenever a book is added. A load that overlaps a Create does not leave its
// counts in the cache. Other processes writing books are only bounded by the TTL.
type CachedBookRepository struct {
	dbRepo book.Repository
	cache  cache.BookStatsCache
	log    *zap.Logger
	group  singleflight.Group
	writes atomic.Uint64
}

// NewCachedBookRepository creates a new instance of CachedBookRepository.
func NewCachedBookRepository(dbRepo book.Repository, cache cache.BookStatsCache, log *zap.Logger) *CachedBookRepository {
	return &CachedBookRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create inserts the book and invalidates cached statistics.
func (r *CachedBookRepository) Create(ctx context.Context, b *domain.Book) (int64, error) {
	id, err := r.dbRepo.Create(ctx, b)
	if err != nil {
		return 0, err
	}

	r.writes.Add(1)
	r.invalidate(ctx, "create")
	return id, nil
}

// GetByName delegates to the DB repository.
func (r *CachedBookRepository) GetByName(ctx context.Context, name string) (*domain.Book, error) {
	return r.dbRepo.GetByName(ctx, name)
}

// Statistics returns per-category counts using Cache-Aside pattern.
func (r *CachedBookRepository) Statistics(ctx context.Context) ([]domain.Stat, error) {
	if r.cache != nil {
		stats, err := r.cache.Get(ctx)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Error(err))
		} else if stats != nil {
			return stats, nil
		}
	}

	result, err, _ := r.group.Do("book:stats", func() (any, error) {
		gen := r.writes.Load()
		stats, err := r.dbRepo.Statistics(ctx)
		if err != nil {
			return nil, err
		}
		r.fill(ctx, stats, gen)
		return stats, nil
	})
	if err != nil {
		return nil, err
	}

	stats := result.([]domain.Stat)
	return append([]domain.Stat(nil), stats...), nil
}

// fill caches stats unless a book was created since gen was taken.
func (r *CachedBookRepository) fill(ctx context.Context, stats []domain.Stat, gen uint64) {
	if r.cache == nil || r.writes.Load() != gen {
		return
	}
	if err := r.cache.Set(ctx, stats); err != nil {
		r.log.Warn("failed to cache book stats", zap.Error(err))
		return
	}
	if r.writes.Load() != gen {
		r.invalidate(ctx, "concurrent create")
	}
}

func (r *CachedBookRepository) invalidate(ctx context.Context, op string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx); err != nil {
		r.log.Warn("failed to invalidate book stats after "+op, zap.Error(err))
	}
}
