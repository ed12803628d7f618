package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"library-service/internal/domain/book"
	apperrors "library-service/pkg/errors"
)

// BookRepoPG implements the book Repository interface using PostgreSQL and GORM.
type BookRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewBookRepoPG creates a new instance of BookRepoPG.
func NewBookRepoPG(db *gorm.DB, log *zap.Logger) *BookRepoPG {
	return &BookRepoPG{db: db, log: log}
}

// BookSchema represents the database schema for the books table.
type BookSchema struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"not null;index"`
	Type string `gorm:"not null;size:32"`
}

// TableName specifies the table name for the BookSchema model.
func (BookSchema) TableName() string {
	return "books"
}

// Create inserts a new book into the database.
func (r *BookRepoPG) Create(ctx context.Context, b *book.Book) (int64, error) {
	if b == nil {
		return 0, errors.New("book cannot be nil")
	}

	model := BookSchema{
		Name: b.Name,
		Type: string(b.Type),
	}

	if err := conn(ctx, r.db).Create(&model).Error; err != nil {
		r.log.Error("failed to create book in db", zap.Error(err), zap.String("name", b.Name))
		return 0, fmt.Errorf("failed to create book: %w", err)
	}

	r.log.Info("book created in db", zap.Int64("id", model.ID), zap.String("type", model.Type))
	return model.ID, nil
}

// GetByName retrieves the first book with the given name.
func (r *BookRepoPG) GetByName(ctx context.Context, name string) (*book.Book, error) {
	var model BookSchema
	if err := conn(ctx, r.db).Where("name = ?", name).Order("id").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("book not found", zap.String("name", name))
			return nil, apperrors.NewNotFoundError("book", fmt.Sprintf("book not found: name=%s", name))
		}
		r.log.Error("failed to get book from db", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return &book.Book{
		ID:   model.ID,
		Name: model.Name,
		Type: book.Type(model.Type),
	}, nil
}

// Statistics counts books per category. Categories without books are absent.
func (r *BookRepoPG) Statistics(ctx context.Context) ([]book.Stat, error) {
	var rows []struct {
		Type  string
		Count int64
	}

	err := conn(ctx, r.db).
		Model(&BookSchema{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		r.log.Error("failed to aggregate book statistics", zap.Error(err))
		return nil, fmt.Errorf("failed to get book statistics: %w", err)
	}

	stats := make([]book.Stat, len(rows))
	for i, row := range rows {
		stats[i] = book.Stat{Type: book.Type(row.Type), Count: row.Count}
	}
	return stats, nil
}
