// Package library defines the library.v1.LibraryService gRPC contract.
// Messages are plain Go structs exchanged with the JSON codec.
package library

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "library.v1.LibraryService"

const (
	CreateBookFullMethod           = "/" + ServiceName + "/CreateBook"
	LoanBookFullMethod             = "/" + ServiceName + "/LoanBook"
	ReturnBookFullMethod           = "/" + ServiceName + "/ReturnBook"
	CountLoanedBooksFullMethod     = "/" + ServiceName + "/CountLoanedBooks"
	GetBookStatisticsFullMethod    = "/" + ServiceName + "/GetBookStatistics"
	CreateUserFullMethod           = "/" + ServiceName + "/CreateUser"
	ListUsersFullMethod            = "/" + ServiceName + "/ListUsers"
	UpdateUserNameFullMethod       = "/" + ServiceName + "/UpdateUserName"
	DeleteUserFullMethod           = "/" + ServiceName + "/DeleteUser"
	GetUserLoanHistoriesFullMethod = "/" + ServiceName + "/GetUserLoanHistories"
)

// LibraryServiceServer is the server API for LibraryService.
type LibraryServiceServer interface {
	CreateBook(context.Context, *CreateBookRequest) (*CreateBookResponse, error)
	LoanBook(context.Context, *LoanBookRequest) (*LoanBookResponse, error)
	ReturnBook(context.Context, *ReturnBookRequest) (*ReturnBookResponse, error)
	CountLoanedBooks(context.Context, *Empty) (*CountLoanedBooksResponse, error)
	GetBookStatistics(context.Context, *Empty) (*GetBookStatisticsResponse, error)
	CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	UpdateUserName(context.Context, *UpdateUserNameRequest) (*UpdateUserNameResponse, error)
	DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error)
	GetUserLoanHistories(context.Context, *Empty) (*GetUserLoanHistoriesResponse, error)
}

// UnimplementedLibraryServiceServer can be embedded to have forward compatible implementations.
type UnimplementedLibraryServiceServer struct{}

func (UnimplementedLibraryServiceServer) CreateBook(context.Context, *CreateBookRequest) (*CreateBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateBook not implemented")
}
func (UnimplementedLibraryServiceServer) LoanBook(context.Context, *LoanBookRequest) (*LoanBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LoanBook not implemented")
}
func (UnimplementedLibraryServiceServer) ReturnBook(context.Context, *ReturnBookRequest) (*ReturnBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReturnBook not implemented")
}
func (UnimplementedLibraryServiceServer) CountLoanedBooks(context.Context, *Empty) (*CountLoanedBooksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CountLoanedBooks not implemented")
}
func (UnimplementedLibraryServiceServer) GetBookStatistics(context.Context, *Empty) (*GetBookStatisticsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBookStatistics not implemented")
}
func (UnimplementedLibraryServiceServer) CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateUser not implemented")
}
func (UnimplementedLibraryServiceServer) ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUsers not implemented")
}
func (UnimplementedLibraryServiceServer) UpdateUserName(context.Context, *UpdateUserNameRequest) (*UpdateUserNameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateUserName not implemented")
}
func (UnimplementedLibraryServiceServer) DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteUser not implemented")
}
func (UnimplementedLibraryServiceServer) GetUserLoanHistories(context.Context, *Empty) (*GetUserLoanHistoriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUserLoanHistories not implemented")
}

// RegisterLibraryServiceServer registers srv with s.
func RegisterLibraryServiceServer(s grpc.ServiceRegistrar, srv LibraryServiceServer) {
	s.RegisterService(&LibraryService_ServiceDesc, srv)
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(LibraryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LibraryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LibraryServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LibraryService_ServiceDesc is the grpc.ServiceDesc for LibraryService.
var LibraryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LibraryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateBook", Handler: unary(CreateBookFullMethod, LibraryServiceServer.CreateBook)},
		{MethodName: "LoanBook", Handler: unary(LoanBookFullMethod, LibraryServiceServer.LoanBook)},
		{MethodName: "ReturnBook", Handler: unary(ReturnBookFullMethod, LibraryServiceServer.ReturnBook)},
		{MethodName: "CountLoanedBooks", Handler: unary(CountLoanedBooksFullMethod, LibraryServiceServer.CountLoanedBooks)},
		{MethodName: "GetBookStatistics", Handler: unary(GetBookStatisticsFullMethod, LibraryServiceServer.GetBookStatistics)},
		{MethodName: "CreateUser", Handler: unary(CreateUserFullMethod, LibraryServiceServer.CreateUser)},
		{MethodName: "ListUsers", Handler: unary(ListUsersFullMethod, LibraryServiceServer.ListUsers)},
		{MethodName: "UpdateUserName", Handler: unary(UpdateUserNameFullMethod, LibraryServiceServer.UpdateUserName)},
		{MethodName: "DeleteUser", Handler: unary(DeleteUserFullMethod, LibraryServiceServer.DeleteUser)},
		{MethodName: "GetUserLoanHistories", Handler: unary(GetUserLoanHistoriesFullMethod, LibraryServiceServer.GetUserLoanHistories)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "library/v1/library.proto",
}

// LibraryServiceClient is the client API for LibraryService.
type LibraryServiceClient interface {
	CreateBook(ctx context.Context, in *CreateBookRequest, opts ...grpc.CallOption) (*CreateBookResponse, error)
	LoanBook(ctx context.Context, in *LoanBookRequest, opts ...grpc.CallOption) (*LoanBookResponse, error)
	ReturnBook(ctx context.Context, in *ReturnBookRequest, opts ...grpc.CallOption) (*ReturnBookResponse, error)
	CountLoanedBooks(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CountLoanedBooksResponse, error)
	GetBookStatistics(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetBookStatisticsResponse, error)
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error)
	ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error)
	UpdateUserName(ctx context.Context, in *UpdateUserNameRequest, opts ...grpc.CallOption) (*UpdateUserNameResponse, error)
	DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error)
	GetUserLoanHistories(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetUserLoanHistoriesResponse, error)
}

type libraryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLibraryServiceClient returns a client that always speaks the JSON codec.
func NewLibraryServiceClient(cc grpc.ClientConnInterface) LibraryServiceClient {
	return &libraryServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *libraryServiceClient) CreateBook(ctx context.Context, in *CreateBookRequest, opts ...grpc.CallOption) (*CreateBookResponse, error) {
	return invoke[CreateBookResponse](ctx, c.cc, CreateBookFullMethod, in, opts)
}

func (c *libraryServiceClient) LoanBook(ctx context.Context, in *LoanBookRequest, opts ...grpc.CallOption) (*LoanBookResponse, error) {
	return invoke[LoanBookResponse](ctx, c.cc, LoanBookFullMethod, in, opts)
}

func (c *libraryServiceClient) ReturnBook(ctx context.Context, in *ReturnBookRequest, opts ...grpc.CallOption) (*ReturnBookResponse, error) {
	return invoke[ReturnBookResponse](ctx, c.cc, ReturnBookFullMethod, in, opts)
}

func (c *libraryServiceClient) CountLoanedBooks(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CountLoanedBooksResponse, error) {
	return invoke[CountLoanedBooksResponse](ctx, c.cc, CountLoanedBooksFullMethod, in, opts)
}

func (c *libraryServiceClient) GetBookStatistics(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetBookStatisticsResponse, error) {
	return invoke[GetBookStatisticsResponse](ctx, c.cc, GetBookStatisticsFullMethod, in, opts)
}

func (c *libraryServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error) {
	return invoke[CreateUserResponse](ctx, c.cc, CreateUserFullMethod, in, opts)
}

func (c *libraryServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, ListUsersFullMethod, in, opts)
}

func (c *libraryServiceClient) UpdateUserName(ctx context.Context, in *UpdateUserNameRequest, opts ...grpc.CallOption) (*UpdateUserNameResponse, error) {
	return invoke[UpdateUserNameResponse](ctx, c.cc, UpdateUserNameFullMethod, in, opts)
}

func (c *libraryServiceClient) DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error) {
	return invoke[DeleteUserResponse](ctx, c.cc, DeleteUserFullMethod, in, opts)
}

func (c *libraryServiceClient) GetUserLoanHistories(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetUserLoanHistoriesResponse, error) {
	return invoke[GetUserLoanHistoriesResponse](ctx, c.cc, GetUserLoanHistoriesFullMethod, in, opts)
}
