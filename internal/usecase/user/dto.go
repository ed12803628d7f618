package user

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name string `validate:"required,max=255"`
	Age  *int   `validate:"omitempty,gte=0,lte=2147483647"`
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID int64
}

// UpdateUserNameRequest represents the request payload for renaming a user.
type UpdateUserNameRequest struct {
	ID   int64  `validate:"gt=0"`
	Name string `validate:"required,max=255"`
}

// UpdateUserNameResponse represents the response payload after renaming a user.
type UpdateUserNameResponse struct {
	ID int64
}

// DeleteUserRequest identifies the user to delete by name.
type DeleteUserRequest struct {
	Name string `validate:"required"`
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID int64
}

// ListUsersRequest represents the request payload for listing users.
// An empty Query lists everyone.
type ListUsersRequest struct {
	Query string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID   int64
	Name string
	Age  *int
}

// LoanedBook is one entry of a user's loan history.
type LoanedBook struct {
	Name     string
	Returned bool
}

// UserLoanHistory groups the loan history of a single user.
type UserLoanHistory struct {
	Name  string
	Books []LoanedBook
}

// UserLoanHistoriesResponse holds one entry per user, including users without loans.
type UserLoanHistoriesResponse struct {
	Users []UserLoanHistory
}
