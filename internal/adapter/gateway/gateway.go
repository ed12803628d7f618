// Package gateway exposes LibraryService over REST on a grpc-gateway ServeMux.
// Every route forwards to the gRPC server through a LibraryServiceClient.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	pb "library-service/api/library"
	"library-service/pkg/logger"
)

type gateway struct {
	client pb.LibraryServiceClient
	mux    *runtime.ServeMux
	log    *zap.Logger
}

// NewHandler builds the REST mux for client.
func NewHandler(client pb.LibraryServiceClient, log *zap.Logger) (http.Handler, error) {
	g := &gateway{client: client, log: log}
	g.mux = runtime.NewServeMux(
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
			MarshalOptions:   protojson.MarshalOptions{UseProtoNames: true, EmitUnpopulated: true},
			UnmarshalOptions: protojson.UnmarshalOptions{DiscardUnknown: true},
		}),
		runtime.WithErrorHandler(g.writeError),
	)

	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodPost, "/v1/books", handle(g, http.StatusCreated, decodeBody[pb.CreateBookRequest], g.client.CreateBook)},
		{http.MethodPost, "/v1/books/loan", handle(g, http.StatusOK, decodeBody[pb.LoanBookRequest], g.client.LoanBook)},
		{http.MethodPut, "/v1/books/return", handle(g, http.StatusOK, decodeBody[pb.ReturnBookRequest], g.client.ReturnBook)},
		{http.MethodGet, "/v1/books/loan/count", handle(g, http.StatusOK, nil, g.client.CountLoanedBooks)},
		{http.MethodGet, "/v1/books/statistics", handle(g, http.StatusOK, nil, g.client.GetBookStatistics)},
		{http.MethodPost, "/v1/users", handle(g, http.StatusCreated, decodeBody[pb.CreateUserRequest], g.client.CreateUser)},
		{http.MethodGet, "/v1/users", handle(g, http.StatusOK, decodeListUsers, g.client.ListUsers)},
		{http.MethodPut, "/v1/users/{id}", handle(g, http.StatusOK, decodeUpdateUserName, g.client.UpdateUserName)},
		{http.MethodDelete, "/v1/users", handle(g, http.StatusOK, decodeDeleteUser, g.client.DeleteUser)},
		{http.MethodGet, "/v1/users/loan-histories", handle(g, http.StatusOK, nil, g.client.GetUserLoanHistories)},
	}

	for _, r := range routes {
		if err := g.mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return nil, fmt.Errorf("failed to register %s %s: %w", r.method, r.pattern, err)
		}
	}

	return g.mux, nil
}

// handle adapts one client call to a route. decode may be nil for calls
// without input.
func handle[Req, Resp any](
	g *gateway,
	code int,
	decode func(m runtime.Marshaler, r *http.Request, params map[string]string, req *Req) error,
	call func(ctx context.Context, in *Req, opts ...grpc.CallOption) (*Resp, error),
) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		ctx := outgoingContext(r)
		inbound, outbound := runtime.MarshalerForRequest(g.mux, r)

		var req Req
		if decode != nil {
			if err := decode(inbound, r, params, &req); err != nil {
				g.writeError(ctx, g.mux, outbound, w, r, status.Error(codes.InvalidArgument, err.Error()))
				return
			}
		}

		var header metadata.MD
		resp, err := call(ctx, &req, grpc.Header(&header))
		if ids := header.Get(logger.RequestIDHeader); len(ids) > 0 {
			w.Header().Set(logger.RequestIDHeader, ids[0])
		}
		if err != nil {
			g.writeError(ctx, g.mux, outbound, w, r, err)
			return
		}

		buf, err := outbound.Marshal(resp)
		if err != nil {
			g.log.Error("failed to marshal gateway response", zap.String("path", r.URL.Path), zap.Error(err))
			g.writeError(ctx, g.mux, outbound, w, r, status.Error(codes.Internal, "internal server error"))
			return
		}

		w.Header().Set("Content-Type", outbound.ContentType(resp))
		w.WriteHeader(code)
		_, _ = w.Write(buf)
	}
}

// writeError renders err as a google.rpc.Status body. FailedPrecondition is
// reported as 409 so the gateway agrees with the Gin API.
func (g *gateway) writeError(ctx context.Context, _ *runtime.ServeMux, _ runtime.Marshaler, w http.ResponseWriter, r *http.Request, err error) {
	st := status.Convert(err)

	httpCode := runtime.HTTPStatusFromCode(st.Code())
	if st.Code() == codes.FailedPrecondition {
		httpCode = http.StatusConflict
	}
	if httpCode >= http.StatusInternalServerError {
		logger.WithContext(ctx, g.log).Error("gateway call failed", zap.String("path", r.URL.Path), zap.Error(err))
	}

	body, mErr := protojson.Marshal(st.Proto())
	if mErr != nil {
		g.log.Error("failed to marshal status", zap.Error(mErr))
		body = []byte(`{"code":13,"message":"failed to marshal error message"}`)
		httpCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	_, _ = w.Write(body)
}

// outgoingContext forwards the caller address and request id to the gRPC server.
func outgoingContext(r *http.Request) context.Context {
	pairs := []string{"x-forwarded-for", clientIP(r)}
	if id := r.Header.Get(logger.RequestIDHeader); id != "" {
		pairs = append(pairs, logger.RequestIDHeader, id)
	}
	return metadata.AppendToOutgoingContext(r.Context(), pairs...)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func decodeBody[Req any](m runtime.Marshaler, r *http.Request, _ map[string]string, req *Req) error {
	if err := m.NewDecoder(r.Body).Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func decodeListUsers(_ runtime.Marshaler, r *http.Request, _ map[string]string, req *pb.ListUsersRequest) error {
	req.Query = r.URL.Query().Get("query")
	return nil
}

func decodeDeleteUser(_ runtime.Marshaler, r *http.Request, _ map[string]string, req *pb.DeleteUserRequest) error {
	req.Name = r.URL.Query().Get("name")
	return nil
}

func decodeUpdateUserName(m runtime.Marshaler, r *http.Request, params map[string]string, req *pb.UpdateUserNameRequest) error {
	if err := decodeBody(m, r, params, req); err != nil {
		return err
	}
	id, err := strconv.ParseInt(params["id"], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", params["id"])
	}
	req.ID = id
	return nil
}
