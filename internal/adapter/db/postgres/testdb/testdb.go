// Package testdb opens throwaway in-memory databases with the service schema.
package testdb

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"library-service/internal/adapter/db/postgres"
)

// New returns a migrated in-memory SQLite database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("testdb: open: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("testdb: sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(&postgres.UserSchema{}, &postgres.BookSchema{}, &postgres.LoanHistorySchema{}); err != nil {
		t.Fatalf("testdb: migrate: %v", err)
	}
	return db
}
