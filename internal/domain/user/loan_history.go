package user

import apperrors "library-service/pkg/errors"

// LoanStatus is the state of a single loan event.
type LoanStatus string

const (
	// LoanStatusLoaned marks a book that is currently out.
	LoanStatusLoaned LoanStatus = "LOANED"
	// LoanStatusReturned marks a loan that has been closed.
	LoanStatusReturned LoanStatus = "RETURNED"
)

// Loan errors surfaced to callers with fixed messages.
var (
	ErrAlreadyLoaned = apperrors.NewDomainError("already_loaned", "the book is already on loan")
	ErrNeverLoaned   = apperrors.NewDomainError("never_loaned", "the book was never loaned")
)

// LoanHistory records one loan of a book, identified by its name, to a user.
type LoanHistory struct {
	ID       int64
	UserID   int64
	BookName string
	Status   LoanStatus
}

// NewLoanHistory starts a loan in the LOANED state.
func NewLoanHistory(userID int64, bookName string) *LoanHistory {
	return &LoanHistory{
		UserID:   userID,
		BookName: bookName,
		Status:   LoanStatusLoaned,
	}
}

// IsReturned reports whether the loan has been closed.
func (h *LoanHistory) IsReturned() bool {
	return h.Status == LoanStatusReturned
}

// Return closes the loan. Only LOANED -> RETURNED is legal.
func (h *LoanHistory) Return() error {
	if h.Status != LoanStatusLoaned {
		return ErrNeverLoaned
	}
	h.Status = LoanStatusReturned
	return nil
}
