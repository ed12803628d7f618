package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "library-service/internal/adapter/gin/handler"
	ginrouter "library-service/internal/adapter/gin/router"
	grpcmiddleware "library-service/internal/adapter/grpc/middleware"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	bookHandler *ginhandler.BookHandler,
	userHandler *ginhandler.UserHandler,
	rateLimiter *grpcmiddleware.RateLimiter,
	ginAddr string,
	l *zap.Logger,
	checks ...ginrouter.HealthCheck,
) *http.Server {
	router := ginrouter.SetupRouter(bookHandler, userHandler, rateLimiter, l, checks...)

	l.Info("Gin REST API configured", zap.String("address", ginAddr))

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
