package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"library-service/cmd/api/infrastructure"
	"library-service/internal/adapter/cache"
	"library-service/internal/adapter/db/postgres"
	ginhandler "library-service/internal/adapter/gin/handler"
	ginrouter "library-service/internal/adapter/gin/router"
	"library-service/internal/adapter/grpc/middleware"
	"library-service/internal/adapter/repository/cached"
	"library-service/internal/config"
	"library-service/internal/usecase/book"
	"library-service/internal/usecase/user"
	redisclient "library-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	BookUC      book.BookUsecase
	UserUC      user.UserUsecase
	RateLimiter *middleware.RateLimiter
	BookHandler *ginhandler.BookHandler
	UserHandler *ginhandler.UserHandler

	// HealthChecks back the Gin /health endpoint.
	HealthChecks []ginrouter.HealthCheck
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.DB.AutoMigrate {
		if err := infrastructure.Migrate(ctx, db, l); err != nil {
			_ = infrastructure.CloseDatabase(db)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		_ = infrastructure.CloseDatabase(db)
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Repositories
	loanRepo := postgres.NewLoanHistoryRepoPG(db, l)
	var (
		userRepo user.Repository = postgres.NewUserRepoPG(db, l)
		bookRepo book.Repository = postgres.NewBookRepoPG(db, l)
	)

	c := &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
	}
	c.HealthChecks = append(c.HealthChecks, ginrouter.HealthCheck{Name: "postgres", Check: infrastructure.PingDatabase(db)})

	if rdb != nil {
		userRepo = cached.NewCachedUserRepository(userRepo, cache.NewRedisUserCache(rdb.Client, cfg.Redis.UserTTL(), l), l)
		bookRepo = cached.NewCachedBookRepository(bookRepo, cache.NewRedisBookStatsCache(rdb.Client, cfg.Redis.StatsTTL(), l), l)

		c.RateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
		c.HealthChecks = append(c.HealthChecks, ginrouter.HealthCheck{Name: "redis", Check: rdb.Healthy})
	}

	// Use cases
	c.BookUC = book.New(bookRepo, userRepo, loanRepo, postgres.NewTxManager(db), l)
	c.UserUC = user.New(userRepo, loanRepo, l)

	// Gin handlers
	c.BookHandler = ginhandler.NewBookHandler(c.BookUC, l)
	c.UserHandler = ginhandler.NewUserHandler(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
