package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "library-service/internal/domain/user"
	apperrors "library-service/pkg/errors"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., PostgreSQL, a cached decorator) to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	FindByName(ctx context.Context, name string) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context, query string) ([]domain.User, error)
}

// LoanHistoryRepository is the read side of loan histories used for reporting.
type LoanHistoryRepository interface {
	ListByUserIDs(ctx context.Context, userIDs []int64) ([]domain.LoanHistory, error)
}

// Usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Usecase struct {
	repo     Repository
	loans    LoanHistoryRepository
	log      *zap.Logger
	validate *validator.Validate
}

var _ UserUsecase = (*Usecase)(nil)

// New creates a new instance of Usecase with the provided repositories and logger.
func New(r Repository, loans LoanHistoryRepository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, loans: loans, log: log, validate: validator.New()}
}

// CreateUser registers a new user. Names are not unique and age is optional.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	uc.log.Info("creating user", zap.String("name", in.Name))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, apperrors.FromValidator(err)
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		Name: in.Name,
		Age:  in.Age,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.Internal("failed to create user", err)
	}
	return &CreateUserResponse{ID: id}, nil
}

// ListUsers returns every user, or those whose name contains Query.
func (uc *Usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	uc.log.Info("listing users", zap.String("query", in.Query))

	domainUsers, err := uc.repo.List(ctx, in.Query)
	if err != nil {
		uc.log.Warn("failed to list users", zap.String("query", in.Query), zap.Error(err))
		return nil, apperrors.Internal("failed to list users", err)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:   du.ID,
			Name: du.Name,
			Age:  du.Age,
		}
	}

	return &ListUsersResponse{Users: users}, nil
}

// UpdateUserName renames an existing user. The age is left as it is.
func (uc *Usecase) UpdateUserName(ctx context.Context, in UpdateUserNameRequest) (*UpdateUserNameResponse, error) {
	uc.log.Info("updating user name", zap.Int64("id", in.ID), zap.String("name", in.Name))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, apperrors.FromValidator(err)
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.log.Warn("failed to load user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.Internal("failed to load user", err)
	}

	u.Name = in.Name
	id, err := uc.repo.Update(ctx, u)
	if err != nil {
		uc.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.Internal("failed to update user", err)
	}

	return &UpdateUserNameResponse{ID: id}, nil
}

// DeleteUser removes the single user called Name together with the user's
// loan histories. An ambiguous name is rejected with a ConflictError.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	uc.log.Info("deleting user", zap.String("name", in.Name))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, apperrors.FromValidator(err)
	}

	candidates, err := uc.repo.FindByName(ctx, in.Name)
	if err != nil {
		uc.log.Error("failed to find user", zap.String("name", in.Name), zap.Error(err))
		return nil, apperrors.Internal("failed to find user", err)
	}

	u, err := domain.PickByName(in.Name, candidates)
	if err != nil {
		uc.log.Warn("user lookup failed", zap.String("name", in.Name), zap.Int("matches", len(candidates)), zap.Error(err))
		return nil, err
	}

	id, err := uc.repo.Delete(ctx, u.ID)
	if err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", u.ID), zap.Error(err))
		return nil, apperrors.Internal("failed to delete user", err)
	}

	return &DeleteUserResponse{ID: id}, nil
}

// GetUserLoanHistories reports every user with the books they have borrowed.
// Users without loans are included with an empty list.
func (uc *Usecase) GetUserLoanHistories(ctx context.Context) (*UserLoanHistoriesResponse, error) {
	users, err := uc.repo.List(ctx, "")
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, apperrors.Internal("failed to list users", err)
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	histories, err := uc.loans.ListByUserIDs(ctx, ids)
	if err != nil {
		uc.log.Error("failed to list loan histories", zap.Error(err))
		return nil, apperrors.Internal("failed to list loan histories", err)
	}

	byUser := make(map[int64][]LoanedBook, len(users))
	for _, h := range histories {
		byUser[h.UserID] = append(byUser[h.UserID], LoanedBook{
			Name:     h.BookName,
			Returned: h.IsReturned(),
		})
	}

	out := make([]UserLoanHistory, len(users))
	for i, u := range users {
		books := byUser[u.ID]
		if books == nil {
			books = []LoanedBook{}
		}
		out[i] = UserLoanHistory{Name: u.Name, Books: books}
	}

	return &UserLoanHistoriesResponse{Users: out}, nil
}
