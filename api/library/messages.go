package library

// Empty is the request of parameterless calls.
type Empty struct{}

type CreateBookRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type CreateBookResponse struct {
	ID int64 `json:"id"`
}

type LoanBookRequest struct {
	UserName string `json:"user_name"`
	BookName string `json:"book_name"`
}

type LoanBookResponse struct {
	LoanID int64 `json:"loan_id"`
}

type ReturnBookRequest struct {
	UserName string `json:"user_name"`
	BookName string `json:"book_name"`
}

type ReturnBookResponse struct {
	LoanID int64 `json:"loan_id"`
}

type CountLoanedBooksResponse struct {
	Count int64 `json:"count"`
}

type BookStat struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type GetBookStatisticsResponse struct {
	Stats []*BookStat `json:"stats"`
}

// CreateUserRequest carries an optional age; null means unknown.
type CreateUserRequest struct {
	Name string `json:"name"`
	Age  *int32 `json:"age"`
}

type CreateUserResponse struct {
	ID int64 `json:"id"`
}

type ListUsersRequest struct {
	Query string `json:"query,omitempty"`
}

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  *int32 `json:"age"`
}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type UpdateUserNameRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UpdateUserNameResponse struct {
	ID int64 `json:"id"`
}

type DeleteUserRequest struct {
	Name string `json:"name"`
}

type DeleteUserResponse struct {
	ID int64 `json:"id"`
}

type LoanedBook struct {
	Name     string `json:"name"`
	Returned bool   `json:"returned"`
}

type UserLoanHistory struct {
	Name  string        `json:"name"`
	Books []*LoanedBook `json:"books"`
}

type GetUserLoanHistoriesResponse struct {
	Users []*UserLoanHistory `json:"users"`
}
