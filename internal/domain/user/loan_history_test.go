package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoanHistory_StartsLoaned(t *testing.T) {
	h := NewLoanHistory(7, "Clean Code")

	assert.Equal(t, int64(7), h.UserID)
	assert.Equal(t, "Clean Code", h.BookName)
	assert.Equal(t, LoanStatusLoaned, h.Status)
	assert.False(t, h.IsReturned())
}

func TestLoanHistory_Return(t *testing.T) {
	h := NewLoanHistory(1, "Clean Code")

	require.NoError(t, h.Return())
	assert.Equal(t, LoanStatusReturned, h.Status)
	assert.True(t, h.IsReturned())

	// A returned loan cannot be returned again.
	err := h.Return()
	assert.ErrorIs(t, err, ErrNeverLoaned)
	assert.Equal(t, LoanStatusReturned, h.Status)
}
