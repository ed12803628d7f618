package postgres

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps every pooled connection on the same
	// in-memory schema, and stays private to this test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	// Migrate the schema
	err = db.AutoMigrate(&UserSchema{}, &BookSchema{}, &LoanHistorySchema{})
	require.NoError(t, err)

	return db
}

func intPtr(v int) *int {
	return &v
}
