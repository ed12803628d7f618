package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"library-service/internal/domain/user"
	apperrors "library-service/pkg/errors"
)

func TestUserRepoPG_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &user.User{Name: "아무개"})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "아무개", got.Name)
	assert.Nil(t, got.Age)
}

func TestUserRepoPG_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))

	got, err := repo.GetByID(context.Background(), 42)

	require.Error(t, err)
	assert.Nil(t, got)
	var notFound *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestUserRepoPG_Update_KeepsAge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &user.User{Name: "A", Age: intPtr(20)})
	require.NoError(t, err)

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	u.Name = "B"

	_, err = repo.Update(ctx, u)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	require.NotNil(t, got.Age)
	assert.Equal(t, 20, *got.Age)
}

func TestUserRepoPG_Update_MissingIDDoesNotInsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := repo.Update(ctx, &user.User{ID: 42, Name: "ghost"})

	var notFound *apperrors.NotFoundError
	require.True(t, errors.As(err, &notFound))

	var count int64
	require.NoError(t, db.Model(&UserSchema{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserRepoPG_Update_ClearsAge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &user.User{Name: "A", Age: intPtr(20)})
	require.NoError(t, err)

	_, err = repo.Update(ctx, &user.User{ID: id, Name: "A"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Age)
}

func TestUserRepoPG_FindByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	for _, name := range []string{"A", "B", "A"} {
		_, err := repo.Create(ctx, &user.User{Name: name})
		require.NoError(t, err)
	}

	users, err := repo.FindByName(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.FindByName(ctx, "C")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepoPG_Delete_RemovesLoanHistories(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	users := NewUserRepoPG(db, logger)
	loans := NewLoanHistoryRepoPG(db, logger)
	ctx := context.Background()

	keep, err := users.Create(ctx, &user.User{Name: "keep"})
	require.NoError(t, err)
	drop, err := users.Create(ctx, &user.User{Name: "drop"})
	require.NoError(t, err)

	_, err = loans.Create(ctx, user.NewLoanHistory(keep, "Clean Code"))
	require.NoError(t, err)
	_, err = loans.Create(ctx, user.NewLoanHistory(drop, "Refactoring"))
	require.NoError(t, err)

	deleted, err := users.Delete(ctx, drop)
	require.NoError(t, err)
	assert.Equal(t, drop, deleted)

	all, err := users.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].Name)

	histories, err := loans.ListByUserIDs(ctx, []int64{keep, drop})
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, keep, histories[0].UserID)
}

func TestUserRepoPG_Delete_InvalidID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))

	_, err := repo.Delete(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user id")
}

func TestUserRepoPG_List_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	for _, name := range []string{"John Doe", "jane smith", "ADMIN User", "Jane_Test", "Janet"} {
		_, err := repo.Create(ctx, &user.User{Name: name})
		require.NoError(t, err)
	}

	tests := []struct {
		name        string
		query       string
		expectError bool
		expectCount int
	}{
		{name: "empty search query", query: "", expectCount: 5},
		{name: "lowercase search", query: "john", expectCount: 1},
		{name: "uppercase search", query: "JANE", expectCount: 3},
		{name: "mixed case search", query: "Admin", expectCount: 1},
		{name: "underscore is literal", query: "jane_", expectCount: 1},
		{name: "no match", query: "nobody", expectCount: 0},
		{name: "SQL injection attempt - UNION", query: "john UNION SELECT name FROM users", expectError: true},
		{name: "SQL injection attempt - OR condition", query: "john OR 1=1", expectError: true},
		{name: "invalid characters", query: "john&doe", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.List(ctx, tt.query)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid search query")
				assert.Nil(t, users)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, users)
			assert.Len(t, users, tt.expectCount)
		})
	}
}
