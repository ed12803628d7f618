package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	ginhandler "library-service/internal/adapter/gin/handler"
	ginrouter "library-service/internal/adapter/gin/router"
	"library-service/internal/adapter/grpc/middleware"
	"library-service/internal/config"
	"library-service/internal/usecase/book"
	"library-service/internal/usecase/user"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	GRPC   *grpc.Server
	HTTP   *http.Server
	Gin    *http.Server

	// GatewayConn is the client connection the REST gateway forwards through.
	GatewayConn *grpc.ClientConn
}

// Deps are the application services the servers expose.
type Deps struct {
	BookUC       book.BookUsecase
	UserUC       user.UserUsecase
	RateLimiter  *middleware.RateLimiter
	BookHandler  *ginhandler.BookHandler
	UserHandler  *ginhandler.UserHandler
	HealthChecks []ginrouter.HealthCheck
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, deps Deps) (*Server, error) {
	s := &Server{
		Config: cfg,
		Logger: l,
		GRPC:   SetupGRPC(deps.BookUC, deps.UserUC, l, deps.RateLimiter),
	}

	httpServer, conn, err := SetupHTTPGateway(s.grpcTarget(), s.httpAddress(), l)
	if err != nil {
		return nil, err
	}
	s.HTTP = httpServer
	s.GatewayConn = conn

	s.Gin = SetupGinServer(deps.BookHandler, deps.UserHandler, deps.RateLimiter, s.ginAddress(), l, deps.HealthChecks...)

	return s, nil
}

// Start runs the gRPC server, the REST gateway and the Gin API. It blocks
// until one of them stops and returns that server's error; a server stopped
// by Shutdown reports nil.
func (s *Server) Start() error {
	errCh := make(chan error, 3)

	go func() {
		if err := s.startGRPC(); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
			return
		}
		errCh <- nil
	}()
	go func() {
		errCh <- s.serveHTTP("REST gateway", s.HTTP)
	}()
	go func() {
		errCh <- s.serveHTTP("Gin REST API", s.Gin)
	}()

	return <-errCh
}

// startGRPC starts the gRPC server
func (s *Server) startGRPC() error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(context.Background(), "tcp", s.grpcAddress())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.Logger.Info("gRPC server running", zap.String("address", s.grpcAddress()))
	return s.GRPC.Serve(lis)
}

func (s *Server) serveHTTP(name string, srv *http.Server) error {
	s.Logger.Info(name+" running", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// grpcAddress returns the gRPC server address
func (s *Server) grpcAddress() string {
	return ":" + s.Config.App.GRPCPort
}

// grpcTarget is the address the gateway dials to reach the local gRPC server.
func (s *Server) grpcTarget() string {
	return "localhost:" + s.Config.App.GRPCPort
}

// httpAddress returns the HTTP server address
func (s *Server) httpAddress() string {
	return ":" + s.Config.App.HTTPPort
}

func (s *Server) ginAddress() string {
	return ":" + s.Config.App.GinPort
}
