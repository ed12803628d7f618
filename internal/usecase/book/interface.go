package book

import "context"

// BookUsecase defines the interface for book and loan business logic operations.
type BookUsecase interface {
	CreateBook(ctx context.Context, in CreateBookRequest) (*CreateBookResponse, error)
	LoanBook(ctx context.Context, in LoanBookRequest) (*LoanBookResponse, error)
	ReturnBook(ctx context.Context, in ReturnBookRequest) (*ReturnBookResponse, error)
	CountLoanedBooks(ctx context.Context) (*CountLoanedBooksResponse, error)
	GetBookStatistics(ctx context.Context) (*BookStatisticsResponse, error)
}
