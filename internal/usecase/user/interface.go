package user

import "context"

// UserUsecase defines the interface for user business logic operations.
type UserUsecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	UpdateUserName(ctx context.Context, in UpdateUserNameRequest) (*UpdateUserNameResponse, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error)
	GetUserLoanHistories(ctx context.Context) (*UserLoanHistoriesResponse, error)
}
