package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"library-service/internal/domain/user"
)

// LoanHistoryRepoPG implements the loan history Repository interface using PostgreSQL and GORM.
type LoanHistoryRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewLoanHistoryRepoPG creates a new instance of LoanHistoryRepoPG.
func NewLoanHistoryRepoPG(db *gorm.DB, log *zap.Logger) *LoanHistoryRepoPG {
	return &LoanHistoryRepoPG{db: db, log: log}
}

// LoanHistorySchema represents the database schema for the user_loan_histories table.
// The partial unique index allows a single LOANED row per book name.
type LoanHistorySchema struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	UserID   int64  `gorm:"not null;index"`
	BookName string `gorm:"not null;size:255;uniqueIndex:idx_user_loan_histories_active_book,where:status = 'LOANED'"`
	Status   string `gorm:"not null;size:16"`
}

// TableName specifies the table name for the LoanHistorySchema model.
func (LoanHistorySchema) TableName() string {
	return "user_loan_histories"
}

func (m LoanHistorySchema) toDomain() user.LoanHistory {
	return user.LoanHistory{
		ID:       m.ID,
		UserID:   m.UserID,
		BookName: m.BookName,
		Status:   user.LoanStatus(m.Status),
	}
}

// Create inserts a new loan history. A second active loan for the same book
// is rejected by the database and reported as user.ErrAlreadyLoaned.
func (r *LoanHistoryRepoPG) Create(ctx context.Context, h *user.LoanHistory) (int64, error) {
	if h == nil {
		return 0, errors.New("loan history cannot be nil")
	}

	model := LoanHistorySchema{
		UserID:   h.UserID,
		BookName: h.BookName,
		Status:   string(h.Status),
	}

	if err := conn(ctx, r.db).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("active loan already exists", zap.String("book_name", h.BookName))
			return 0, user.ErrAlreadyLoaned
		}
		r.log.Error("failed to create loan history in db", zap.Error(err),
			zap.Int64("user_id", h.UserID), zap.String("book_name", h.BookName))
		return 0, fmt.Errorf("failed to create loan history: %w", err)
	}

	r.log.Info("loan history created in db", zap.Int64("id", model.ID), zap.Int64("user_id", model.UserID))
	return model.ID, nil
}

// ExistsByBookNameAndStatus reports whether any loan of bookName is in status.
func (r *LoanHistoryRepoPG) ExistsByBookNameAndStatus(ctx context.Context, bookName string, status user.LoanStatus) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&LoanHistorySchema{}).
		Where("book_name = ? AND status = ?", bookName, string(status)).
		Count(&count).Error
	if err != nil {
		r.log.Error("failed to check loan status", zap.Error(err), zap.String("book_name", bookName))
		return false, fmt.Errorf("failed to check loan status: %w", err)
	}
	return count > 0, nil
}

// FindByUserIDAndBookNameAndStatus returns the matching loan, or nil when there is none.
func (r *LoanHistoryRepoPG) FindByUserIDAndBookNameAndStatus(ctx context.Context, userID int64, bookName string, status user.LoanStatus) (*user.LoanHistory, error) {
	var model LoanHistorySchema
	err := conn(ctx, r.db).
		Where("user_id = ? AND book_name = ? AND status = ?", userID, bookName, string(status)).
		Order("id").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("loan history not found", zap.Int64("user_id", userID), zap.String("book_name", bookName))
			return nil, nil
		}
		r.log.Error("failed to find loan history", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to find loan history: %w", err)
	}

	h := model.toDomain()
	return &h, nil
}

// UpdateStatus persists h.Status for the row identified by h.ID.
func (r *LoanHistoryRepoPG) UpdateStatus(ctx context.Context, h *user.LoanHistory) error {
	if h == nil {
		return errors.New("loan history cannot be nil")
	}

	res := conn(ctx, r.db).
		Model(&LoanHistorySchema{}).
		Where("id = ?", h.ID).
		Update("status", string(h.Status))
	if res.Error != nil {
		r.log.Error("failed to update loan status", zap.Error(res.Error), zap.Int64("id", h.ID))
		return fmt.Errorf("failed to update loan status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update loan status: no loan history with id=%d", h.ID)
	}

	r.log.Info("loan status updated in db", zap.Int64("id", h.ID), zap.String("status", string(h.Status)))
	return nil
}

// CountByStatus counts loans in the given status.
func (r *LoanHistoryRepoPG) CountByStatus(ctx context.Context, status user.LoanStatus) (int64, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&LoanHistorySchema{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	if err != nil {
		r.log.Error("failed to count loans", zap.Error(err), zap.String("status", string(status)))
		return 0, fmt.Errorf("failed to count loans: %w", err)
	}
	return count, nil
}

// ListByUserIDs returns every loan history owned by one of userIDs, ordered by ID.
func (r *LoanHistoryRepoPG) ListByUserIDs(ctx context.Context, userIDs []int64) ([]user.LoanHistory, error) {
	if len(userIDs) == 0 {
		return []user.LoanHistory{}, nil
	}

	var models []LoanHistorySchema
	if err := conn(ctx, r.db).Where("user_id IN ?", userIDs).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list loan histories", zap.Error(err), zap.Int("user_count", len(userIDs)))
		return nil, fmt.Errorf("failed to list loan histories: %w", err)
	}

	histories := make([]user.LoanHistory, len(models))
	for i, model := range models {
		histories[i] = model.toDomain()
	}
	return histories, nil
}
