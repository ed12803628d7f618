package book

import (
	"context"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "library-service/internal/domain/book"
	userdomain "library-service/internal/domain/user"
	apperrors "library-service/pkg/errors"
)

// Repository defines the data access operations for books.
type Repository interface {
	Create(ctx context.Context, b *domain.Book) (int64, error)
	GetByName(ctx context.Context, name string) (*domain.Book, error)
	Statistics(ctx context.Context) ([]domain.Stat, error)
}

// UserRepository is the subset of user data access the loan workflow needs.
type UserRepository interface {
	FindByName(ctx context.Context, name string) ([]userdomain.User, error)
}

// LoanHistoryRepository defines the data access operations for loan histories.
type LoanHistoryRepository interface {
	Create(ctx context.Context, h *userdomain.LoanHistory) (int64, error)
	ExistsByBookNameAndStatus(ctx context.Context, bookName string, status userdomain.LoanStatus) (bool, error)
	FindByUserIDAndBookNameAndStatus(ctx context.Context, userID int64, bookName string, status userdomain.LoanStatus) (*userdomain.LoanHistory, error)
	UpdateStatus(ctx context.Context, h *userdomain.LoanHistory) error
	CountByStatus(ctx context.Context, status userdomain.LoanStatus) (int64, error)
}

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Usecase implements the business logic for books and the loan/return workflow.
type Usecase struct {
	books    Repository
	users    UserRepository
	loans    LoanHistoryRepository
	tx       Transactor
	log      *zap.Logger
	validate *validator.Validate
}

var _ BookUsecase = (*Usecase)(nil)

// New creates a new instance of Usecase.
func New(books Repository, users UserRepository, loans LoanHistoryRepository, tx Transactor, log *zap.Logger) *Usecase {
	return &Usecase{
		books:    books,
		users:    users,
		loans:    loans,
		tx:       tx,
		log:      log,
		validate: validator.New(),
	}
}

// CreateBook registers a new book. Duplicate names are allowed.
func (uc *Usecase) CreateBook(ctx context.Context, in CreateBookRequest) (*CreateBookResponse, error) {
	uc.log.Info("creating book", zap.String("name", in.Name), zap.String("type", in.Type))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, apperrors.FromValidator(err)
	}

	id, err := uc.books.Create(ctx, &domain.Book{
		Name: in.Name,
		Type: domain.Type(in.Type),
	})
	if err != nil {
		uc.log.Error("failed to create book", zap.Error(err))
		return nil, apperrors.Internal("failed to create book", err)
	}
	return &CreateBookResponse{ID: id}, nil
}

// LoanBook lends bookName to the user called userName. It fails with
// ErrAlreadyLoaned while another loan of the same title is open.
func (uc *Usecase) LoanBook(ctx context.Context, in LoanBookRequest) (*LoanBookResponse, error) {
	uc.log.Info("loaning book", zap.String("user_name", in.UserName), zap.String("book_name", in.BookName))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, apperrors.FromValidator(err)
	}

	u, err := uc.findUser(ctx, in.UserName)
	if err != nil {
		return nil, err
	}

	if _, err := uc.books.GetByName(ctx, in.BookName); err != nil {
		uc.log.Warn("book lookup failed", zap.String("book_name", in.BookName), zap.Error(err))
		return nil, apperrors.Internal("failed to get book", err)
	}

	var loanID int64
	err = uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		loaned, err := uc.loans.ExistsByBookNameAndStatus(ctx, in.BookName, userdomain.LoanStatusLoaned)
		if err != nil {
			return err
		}
		if loaned {
			return userdomain.ErrAlreadyLoaned
		}

		loanID, err = uc.loans.Create(ctx, userdomain.NewLoanHistory(u.ID, in.BookName))
		return err
	})
	if err != nil {
		if errors.Is(err, userdomain.ErrAlreadyLoaned) {
			uc.log.Warn("book already on loan", zap.String("book_name", in.BookName))
		} else {
			uc.log.Error("failed to loan book", zap.String("book_name", in.BookName), zap.Error(err))
		}
		return nil, apperrors.Internal("failed to loan book", err)
	}

	return &LoanBookResponse{LoanID: loanID}, nil
}

// ReturnBook closes the user's open loan of bookName. It fails with
// ErrNeverLoaned when the user has no open loan of that title.
func (uc *Usecase) ReturnBook(ctx context.Context, in ReturnBookRequest) (*ReturnBookResponse, error) {
	uc.log.Info("returning book", zap.String("user_name", in.UserName), zap.String("book_name", in.BookName))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, apperrors.FromValidator(err)
	}

	u, err := uc.findUser(ctx, in.UserName)
	if err != nil {
		return nil, err
	}

	var loanID int64
	err = uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		h, err := uc.loans.FindByUserIDAndBookNameAndStatus(ctx, u.ID, in.BookName, userdomain.LoanStatusLoaned)
		if err != nil {
			return err
		}
		if h == nil {
			return userdomain.ErrNeverLoaned
		}
		if err := h.Return(); err != nil {
			return err
		}

		loanID = h.ID
		return uc.loans.UpdateStatus(ctx, h)
	})
	if err != nil {
		if errors.Is(err, userdomain.ErrNeverLoaned) {
			uc.log.Warn("book was never loaned", zap.Int64("user_id", u.ID), zap.String("book_name", in.BookName))
		} else {
			uc.log.Error("failed to return book", zap.String("book_name", in.BookName), zap.Error(err))
		}
		return nil, apperrors.Internal("failed to return book", err)
	}

	return &ReturnBookResponse{LoanID: loanID}, nil
}

// CountLoanedBooks returns how many books are currently on loan.
func (uc *Usecase) CountLoanedBooks(ctx context.Context) (*CountLoanedBooksResponse, error) {
	count, err := uc.loans.CountByStatus(ctx, userdomain.LoanStatusLoaned)
	if err != nil {
		uc.log.Error("failed to count loaned books", zap.Error(err))
		return nil, apperrors.Internal("failed to count loaned books", err)
	}
	return &CountLoanedBooksResponse{Count: count}, nil
}

// GetBookStatistics returns the number of books per category, sorted by category.
func (uc *Usecase) GetBookStatistics(ctx context.Context) (*BookStatisticsResponse, error) {
	stats, err := uc.books.Statistics(ctx)
	if err != nil {
		uc.log.Error("failed to get book statistics", zap.Error(err))
		return nil, apperrors.Internal("failed to get book statistics", err)
	}

	out := make([]BookStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, BookStat{Type: string(s.Type), Count: s.Count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })

	return &BookStatisticsResponse{Stats: out}, nil
}

func (uc *Usecase) findUser(ctx context.Context, name string) (*userdomain.User, error) {
	candidates, err := uc.users.FindByName(ctx, name)
	if err != nil {
		uc.log.Error("failed to find user", zap.String("user_name", name), zap.Error(err))
		return nil, apperrors.Internal("failed to find user", err)
	}

	u, err := userdomain.PickByName(name, candidates)
	if err != nil {
		uc.log.Warn("user lookup failed", zap.String("user_name", name), zap.Error(err))
		return nil, err
	}
	return u, nil
}
