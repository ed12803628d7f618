package book

// CreateBookRequest represents the request payload for registering a new book.
type CreateBookRequest struct {
	Name string `validate:"required,max=255"`
	Type string `validate:"required,oneof=COMPUTER ECONOMY SOCIETY LANGUAGE SCIENCE"`
}

// CreateBookResponse represents the response payload after creating a book.
type CreateBookResponse struct {
	ID int64
}

// LoanBookRequest represents the request payload for lending a book to a user.
type LoanBookRequest struct {
	UserName string `validate:"required"`
	BookName string `validate:"required"`
}

// LoanBookResponse carries the ID of the created loan history.
type LoanBookResponse struct {
	LoanID int64
}

// ReturnBookRequest represents the request payload for returning a loaned book.
type ReturnBookRequest struct {
	UserName string `validate:"required"`
	BookName string `validate:"required"`
}

// ReturnBookResponse carries the ID of the closed loan history.
type ReturnBookResponse struct {
	LoanID int64
}

// CountLoanedBooksResponse holds the number of books currently on loan.
type CountLoanedBooksResponse struct {
	Count int64
}

// BookStat is the number of books in one category.
type BookStat struct {
	Type  string
	Count int64
}

// BookStatisticsResponse lists per-category counts, one entry per category present.
type BookStatisticsResponse struct {
	Stats []BookStat
}
