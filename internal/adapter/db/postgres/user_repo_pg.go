package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"library-service/internal/domain/user"
	apperrors "library-service/pkg/errors"
	"library-service/pkg/security"
)

// UserRepoPG implements the user Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name string `gorm:"not null;index"`           // Display name (required, not unique)
	Age  *int   // Optional age, NULL when unknown
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() user.User {
	return user.User{
		ID:   m.ID,
		Name: m.Name,
		Age:  m.Age,
	}
}

// Create inserts a new user into the database.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name: u.Name,
		Age:  u.Age,
	}

	if err := conn(ctx, r.db).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("name", u.Name))
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// Update overwrites the name and age of an existing user. It never inserts:
// a missing id is reported as a NotFoundError.
func (r *UserRepoPG) Update(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	res := conn(ctx, r.db).
		Model(&UserSchema{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{"name": u.Name, "age": u.Age})
	if res.Error != nil {
		r.log.Error("failed to update user in db", zap.Error(res.Error), zap.Int64("id", u.ID))
		return 0, fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.log.Warn("user not found for update", zap.Int64("id", u.ID))
		return 0, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", u.ID))
	}

	r.log.Info("user updated in db", zap.Int64("id", u.ID))
	return u.ID, nil
}

// Delete removes a user and the user's loan histories by ID.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, errors.New("invalid user id")
	}

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&LoanHistorySchema{}).Error; err != nil {
			return err
		}
		return tx.Delete(&UserSchema{}, id).Error
	})
	if err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return id, nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.Int64("id", id))
			return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u := model.toDomain()
	return &u, nil
}

// FindByName returns every user with exactly the given name, ordered by ID.
func (r *UserRepoPG) FindByName(ctx context.Context, name string) ([]user.User, error) {
	var models []UserSchema
	if err := conn(ctx, r.db).Where("name = ?", name).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to find users by name", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to find users by name: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}
	return users, nil
}

// List retrieves users, optionally filtered by a case-insensitive name search.
func (r *UserRepoPG) List(ctx context.Context, query string) ([]user.User, error) {
	cleaned, err := security.ValidateSearchQuery(query)
	if err != nil {
		r.log.Warn("invalid search query", zap.String("query", query), zap.Error(err))
		return nil, apperrors.NewValidationError("query", "invalid search query: "+err.Error())
	}
	query = cleaned

	db := conn(ctx, r.db).Order("id")
	if query != "" {
		pattern := "%" + security.SanitizeSearchString(query) + "%"
		db = db.Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, pattern)
	}

	var models []UserSchema
	if err := db.Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, nil
}
