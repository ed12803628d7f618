package server

import (
	"fmt"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "library-service/api/library"
	"library-service/internal/adapter/gateway"
)

const swaggerSpecPath = "./api/swagger/library.swagger.json"

// SetupHTTPGateway creates the REST gateway server and the client connection
// it forwards through. The caller owns the returned connection.
func SetupHTTPGateway(grpcTarget string, httpAddr string, l *zap.Logger) (*http.Server, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(grpcTarget, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	api, err := gateway.NewHandler(pb.NewLibraryServiceClient(conn), l)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to register gateway: %w", err)
	}

	// Create main HTTP mux to handle both API and Swagger UI
	httpMux := http.NewServeMux()

	httpMux.HandleFunc("/swagger/library.swagger.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, swaggerSpecPath)
	})
	httpMux.HandleFunc("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/library.swagger.json"),
	))

	// Handle all other routes with gRPC Gateway mux
	httpMux.Handle("/", api)

	l.Info("REST gateway configured", zap.String("address", httpAddr), zap.String("grpc_target", grpcTarget))
	l.Info("Swagger UI available at", zap.String("url", "http://localhost"+httpAddr+"/swagger/"))

	return &http.Server{
		Addr:              httpAddr,
		Handler:           httpMux,
		ReadHeaderTimeout: 2 * time.Second,
	}, conn, nil
}
