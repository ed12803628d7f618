package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	pb "library-service/api/library"
	grpcadapter "library-service/internal/adapter/grpc"
	"library-service/internal/adapter/grpc/middleware"
	"library-service/internal/usecase/book"
	"library-service/internal/usecase/user"
	"library-service/pkg/logger"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(bookUC book.BookUsecase, userUC user.UserUsecase, l *zap.Logger, rateLimiter *middleware.RateLimiter) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{logger.RequestIDInterceptor()}
	if rateLimiter != nil {
		interceptors = append(interceptors, rateLimiter.UnaryInterceptor())
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	pb.RegisterLibraryServiceServer(grpcServer, grpcadapter.NewLibraryServiceServer(bookUC, userUC, l))

	return grpcServer
}
