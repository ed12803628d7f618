// Package migrations holds the goose SQL migrations for the PostgreSQL schema.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// FS contains every migration file.
//
//go:embed *.sql
var FS embed.FS

// Up applies every pending migration and returns the ones that ran.
func Up(ctx context.Context, db *sql.DB) ([]*goose.MigrationResult, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return results, nil
}
