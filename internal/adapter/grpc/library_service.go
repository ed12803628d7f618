package grpc

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	pb "library-service/api/library"
	"library-service/internal/usecase/book"
	"library-service/internal/usecase/user"
	apperrors "library-service/pkg/errors"
	"library-service/pkg/logger"
)

// LibraryServiceServer implements the gRPC library service
type LibraryServiceServer struct {
	pb.UnimplementedLibraryServiceServer
	books book.BookUsecase
	users user.UserUsecase
	log   *zap.Logger
}

// NewLibraryServiceServer creates a new gRPC library service server
func NewLibraryServiceServer(books book.BookUsecase, users user.UserUsecase, log *zap.Logger) *LibraryServiceServer {
	return &LibraryServiceServer{books: books, users: users, log: log}
}

// CreateBook handles gRPC CreateBook request
func (s *LibraryServiceServer) CreateBook(ctx context.Context, req *pb.CreateBookRequest) (*pb.CreateBookResponse, error) {
	resp, err := s.books.CreateBook(ctx, book.CreateBookRequest{Name: req.Name, Type: req.Type})
	if err != nil {
		return nil, s.fail(ctx, "CreateBook", err)
	}
	return &pb.CreateBookResponse{ID: resp.ID}, nil
}

// LoanBook handles gRPC LoanBook request
func (s *LibraryServiceServer) LoanBook(ctx context.Context, req *pb.LoanBookRequest) (*pb.LoanBookResponse, error) {
	resp, err := s.books.LoanBook(ctx, book.LoanBookRequest{UserName: req.UserName, BookName: req.BookName})
	if err != nil {
		return nil, s.fail(ctx, "LoanBook", err)
	}
	return &pb.LoanBookResponse{LoanID: resp.LoanID}, nil
}

// ReturnBook handles gRPC ReturnBook request
func (s *LibraryServiceServer) ReturnBook(ctx context.Context, req *pb.ReturnBookRequest) (*pb.ReturnBookResponse, error) {
	resp, err := s.books.ReturnBook(ctx, book.ReturnBookRequest{UserName: req.UserName, BookName: req.BookName})
	if err != nil {
		return nil, s.fail(ctx, "ReturnBook", err)
	}
	return &pb.ReturnBookResponse{LoanID: resp.LoanID}, nil
}

// CountLoanedBooks handles gRPC CountLoanedBooks request
func (s *LibraryServiceServer) CountLoanedBooks(ctx context.Context, _ *pb.Empty) (*pb.CountLoanedBooksResponse, error) {
	resp, err := s.books.CountLoanedBooks(ctx)
	if err != nil {
		return nil, s.fail(ctx, "CountLoanedBooks", err)
	}
	return &pb.CountLoanedBooksResponse{Count: resp.Count}, nil
}

// GetBookStatistics handles gRPC GetBookStatistics request
func (s *LibraryServiceServer) GetBookStatistics(ctx context.Context, _ *pb.Empty) (*pb.GetBookStatisticsResponse, error) {
	resp, err := s.books.GetBookStatistics(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetBookStatistics", err)
	}

	stats := make([]*pb.BookStat, len(resp.Stats))
	for i, st := range resp.Stats {
		stats[i] = &pb.BookStat{Type: st.Type, Count: st.Count}
	}
	return &pb.GetBookStatisticsResponse{Stats: stats}, nil
}

// CreateUser handles gRPC CreateUser request
func (s *LibraryServiceServer) CreateUser(ctx context.Context, req *pb.CreateUserRequest) (*pb.CreateUserResponse, error) {
	resp, err := s.users.CreateUser(ctx, user.CreateUserRequest{Name: req.Name, Age: fromWireAge(req.Age)})
	if err != nil {
		return nil, s.fail(ctx, "CreateUser", err)
	}
	return &pb.CreateUserResponse{ID: resp.ID}, nil
}

// ListUsers handles gRPC ListUsers request
func (s *LibraryServiceServer) ListUsers(ctx context.Context, req *pb.ListUsersRequest) (*pb.ListUsersResponse, error) {
	resp, err := s.users.ListUsers(ctx, user.ListUsersRequest{Query: req.Query})
	if err != nil {
		return nil, s.fail(ctx, "ListUsers", err)
	}

	users := make([]*pb.User, len(resp.Users))
	for i, u := range resp.Users {
		age, err := toWireAge(u.Age)
		if err != nil {
			return nil, s.fail(ctx, "ListUsers", err)
		}
		users[i] = &pb.User{ID: u.ID, Name: u.Name, Age: age}
	}
	return &pb.ListUsersResponse{Users: users}, nil
}

// UpdateUserName handles gRPC UpdateUserName request
func (s *LibraryServiceServer) UpdateUserName(ctx context.Context, req *pb.UpdateUserNameRequest) (*pb.UpdateUserNameResponse, error) {
	resp, err := s.users.UpdateUserName(ctx, user.UpdateUserNameRequest{ID: req.ID, Name: req.Name})
	if err != nil {
		return nil, s.fail(ctx, "UpdateUserName", err)
	}
	return &pb.UpdateUserNameResponse{ID: resp.ID}, nil
}

// DeleteUser handles gRPC DeleteUser request
func (s *LibraryServiceServer) DeleteUser(ctx context.Context, req *pb.DeleteUserRequest) (*pb.DeleteUserResponse, error) {
	resp, err := s.users.DeleteUser(ctx, user.DeleteUserRequest{Name: req.Name})
	if err != nil {
		return nil, s.fail(ctx, "DeleteUser", err)
	}
	return &pb.DeleteUserResponse{ID: resp.ID}, nil
}

// GetUserLoanHistories handles gRPC GetUserLoanHistories request
func (s *LibraryServiceServer) GetUserLoanHistories(ctx context.Context, _ *pb.Empty) (*pb.GetUserLoanHistoriesResponse, error) {
	resp, err := s.users.GetUserLoanHistories(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetUserLoanHistories", err)
	}

	out := make([]*pb.UserLoanHistory, len(resp.Users))
	for i, h := range resp.Users {
		books := make([]*pb.LoanedBook, len(h.Books))
		for j, b := range h.Books {
			books[j] = &pb.LoanedBook{Name: b.Name, Returned: b.Returned}
		}
		out[i] = &pb.UserLoanHistory{Name: h.Name, Books: books}
	}
	return &pb.GetUserLoanHistoriesResponse{Users: out}, nil
}

func (s *LibraryServiceServer) fail(ctx context.Context, method string, err error) error {
	logger.WithContext(ctx, s.log).Debug("gRPC call failed", zap.String("method", method), zap.Error(err))
	return toStatus(err)
}

func fromWireAge(age *int32) *int {
	if age == nil {
		return nil
	}
	v := int(*age)
	return &v
}

// toWireAge narrows a stored age to the wire type. Values outside int32 are
// rejected rather than wrapped.
func toWireAge(age *int) (*int32, error) {
	if age == nil {
		return nil, nil
	}
	if *age < 0 || *age > math.MaxInt32 {
		return nil, apperrors.NewInternalError(fmt.Sprintf("stored age %d cannot be represented", *age), nil)
	}
	v := int32(*age)
	return &v, nil
}
