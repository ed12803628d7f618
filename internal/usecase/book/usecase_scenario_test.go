package book_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"library-service/internal/adapter/db/postgres"
	"library-service/internal/adapter/db/postgres/testdb"
	domain "library-service/internal/domain/book"
	userdomain "library-service/internal/domain/user"
	"library-service/internal/usecase/book"
)

type fixture struct {
	uc    *book.Usecase
	users *postgres.UserRepoPG
	books *postgres.BookRepoPG
	loans *postgres.LoanHistoryRepoPG
}

func newFixture(t *testing.T) fixture {
	db := testdb.New(t)
	log := zaptest.NewLogger(t)

	f := fixture{
		users: postgres.NewUserRepoPG(db, log),
		books: postgres.NewBookRepoPG(db, log),
		loans: postgres.NewLoanHistoryRepoPG(db, log),
	}
	f.uc = book.New(f.books, f.users, f.loans, postgres.NewTxManager(db), log)
	return f
}

func (f fixture) seedUser(t *testing.T, name string) int64 {
	id, err := f.users.Create(context.Background(), &userdomain.User{Name: name})
	require.NoError(t, err)
	return id
}

func (f fixture) seedBook(t *testing.T, name string, typ domain.Type) {
	_, err := f.books.Create(context.Background(), &domain.Book{Name: name, Type: typ})
	require.NoError(t, err)
}

func TestScenario_LoanTwiceFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "아무개")
	f.seedUser(t, "홍길동")
	f.seedBook(t, "이상한 나라의 앨리스", domain.TypeComputer)

	_, err := f.uc.LoanBook(ctx, book.LoanBookRequest{UserName: "아무개", BookName: "이상한 나라의 앨리스"})
	require.NoError(t, err)

	_, err = f.uc.LoanBook(ctx, book.LoanBookRequest{UserName: "홍길동", BookName: "이상한 나라의 앨리스"})
	require.ErrorIs(t, err, userdomain.ErrAlreadyLoaned)

	count, err := f.uc.CountLoanedBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)
}

func TestScenario_ReturnThenLoanAgain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "아무개")
	f.seedBook(t, "Clean Code", domain.TypeComputer)

	loaned, err := f.uc.LoanBook(ctx, book.LoanBookRequest{UserName: "아무개", BookName: "Clean Code"})
	require.NoError(t, err)

	returned, err := f.uc.ReturnBook(ctx, book.ReturnBookRequest{UserName: "아무개", BookName: "Clean Code"})
	require.NoError(t, err)
	assert.Equal(t, loaned.LoanID, returned.LoanID)

	histories, err := f.loans.ListByUserIDs(ctx, []int64{userID})
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, userdomain.LoanStatusReturned, histories[0].Status)

	_, err = f.uc.LoanBook(ctx, book.LoanBookRequest{UserName: "아무개", BookName: "Clean Code"})
	require.NoError(t, err)

	histories, err = f.loans.ListByUserIDs(ctx, []int64{userID})
	require.NoError(t, err)
	require.Len(t, histories, 2)
	assert.Equal(t, userdomain.LoanStatusReturned, histories[0].Status)
	assert.Equal(t, userdomain.LoanStatusLoaned, histories[1].Status)
}

func TestScenario_ReturnWithoutLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "아무개")
	f.seedBook(t, "Clean Code", domain.TypeComputer)

	_, err := f.uc.ReturnBook(ctx, book.ReturnBookRequest{UserName: "아무개", BookName: "Clean Code"})
	require.ErrorIs(t, err, userdomain.ErrNeverLoaned)
}

func TestScenario_ReturnOnlyTouchesOwnLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "A")
	f.seedUser(t, "B")
	f.seedBook(t, "Clean Code", domain.TypeComputer)

	_, err := f.uc.LoanBook(ctx, book.LoanBookRequest{UserName: "A", BookName: "Clean Code"})
	require.NoError(t, err)

	_, err = f.uc.ReturnBook(ctx, book.ReturnBookRequest{UserName: "B", BookName: "Clean Code"})
	require.ErrorIs(t, err, userdomain.ErrNeverLoaned)

	count, err := f.uc.CountLoanedBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)
}

func TestScenario_BookStatistics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, in := range []book.CreateBookRequest{
		{Name: "K1", Type: "SOCIETY"},
		{Name: "K2", Type: "COMPUTER"},
		{Name: "K3", Type: "COMPUTER"},
	} {
		_, err := f.uc.CreateBook(ctx, in)
		require.NoError(t, err)
	}

	resp, err := f.uc.GetBookStatistics(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []book.BookStat{
		{Type: "SOCIETY", Count: 1},
		{Type: "COMPUTER", Count: 2},
	}, resp.Stats)
}
