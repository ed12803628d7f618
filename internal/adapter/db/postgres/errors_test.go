package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped gorm duplicated key", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "postgres foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "sqlite unique constraint", err: errors.New("constraint failed: UNIQUE constraint failed: user_loan_histories.book_name (2067)"), want: true},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
