package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-service/internal/adapter/gin/handler"
	"library-service/internal/adapter/gin/middleware"
	grpcmiddleware "library-service/internal/adapter/grpc/middleware"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// SetupRouter configures and returns a Gin router with all routes and middleware.
// /health answers 503 as soon as one of checks fails.
func SetupRouter(
	bookHandler *handler.BookHandler,
	userHandler *handler.UserHandler,
	rateLimiter *grpcmiddleware.RateLimiter,
	log *zap.Logger,
	checks ...HealthCheck,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RateLimiter(rateLimiter, log))

	router.GET("/health", health(checks, log))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.POST("/loan", bookHandler.LoanBook)
			books.PUT("/return", bookHandler.ReturnBook)
			books.GET("/loan/count", bookHandler.CountLoanedBooks)
			books.GET("/statistics", bookHandler.GetBookStatistics)
		}

		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.PUT("/:id", userHandler.UpdateUserName)
			users.DELETE("", userHandler.DeleteUser)
			users.GET("/loan-histories", userHandler.GetUserLoanHistories)
		}
	}

	return router
}

func health(checks []HealthCheck, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		code, state := http.StatusOK, "healthy"
		results := make(map[string]string, len(checks))
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				log.Warn("health check failed", zap.String("dependency", hc.Name), zap.Error(err))
				code, state = http.StatusServiceUnavailable, "unhealthy"
				results[hc.Name] = err.Error()
				continue
			}
			results[hc.Name] = "ok"
		}

		c.JSON(code, gin.H{
			"status":  state,
			"service": "library-service-gin",
			"checks":  results,
		})
	}
}
