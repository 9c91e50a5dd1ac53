package db

import (
	"context"
	"testing"

	"library_api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateBook_DuplicateISBN(t *testing.T) {
	r := openTestRepo(t)

	seedBook(t, r, "978-0-13-468599-1", 1)

	dup := &models.Book{
		ID:              uuid.NewString(),
		Title:           "Another Title",
		Author:          "Another Author",
		ISBN:            "978-0-13-468599-1",
		TotalCopies:     3,
		AvailableCopies: 3,
	}
	err := r.CreateBook(context.Background(), dup)
	assert.ErrorIs(t, err, ErrISBNExists)
}

func Test_ListBooks_Filters(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()

	gopher := seedBook(t, r, "978-0-13-468599-1", 2)
	gopher.Category = "programming"
	gopher.Title = "The Go Programming Language"
	gopher.Author = "Donovan"
	require.NoError(t, r.DB.Save(gopher).Error)

	novel := seedBook(t, r, "978-0-7432-7356-5", 1)
	novel.Category = "fiction"
	novel.Title = "Some Novel"
	novel.Author = "Gatsby Fan"
	require.NoError(t, r.DB.Save(novel).Error)

	// 借光 novel
	user := seedUser(t, r, "alice", false)
	_, err := r.BorrowBook(ctx, user.ID, novel.ID)
	require.NoError(t, err)

	all, err := r.ListBooks(ctx, BookFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, gopher.ID, all[0].ID, "stable creation order")

	byCategory, err := r.ListBooks(ctx, BookFilter{Category: "fiction"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, novel.ID, byCategory[0].ID)

	available, err := r.ListBooks(ctx, BookFilter{OnlyAvailable: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, gopher.ID, available[0].ID)

	// 大小写不敏感，标题/作者都匹配
	byText, err := r.ListBooks(ctx, BookFilter{Q: "go progr"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	byAuthor, err := r.ListBooks(ctx, BookFilter{Q: "GATSBY"})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)

	none, err := r.ListBooks(ctx, BookFilter{Category: "fiction", OnlyAvailable: true})
	require.NoError(t, err)
	assert.Empty(t, none, "filters are ANDed")
}

func Test_DeleteBook_ActiveLoanGuard(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()

	user := seedUser(t, r, "alice", false)
	book := seedBook(t, r, "978-0-13-468599-1", 1)

	loan, err := r.BorrowBook(ctx, user.ID, book.ID)
	require.NoError(t, err)

	// 有在借不能删
	err = r.DeleteBook(ctx, book.ID)
	assert.ErrorIs(t, err, ErrBookHasActiveLoans)

	_, err = r.ReturnLoan(ctx, loan.ID, user.ID, false)
	require.NoError(t, err)

	require.NoError(t, r.DeleteBook(ctx, book.ID))

	books, err := r.ListBooks(ctx, BookFilter{})
	require.NoError(t, err)
	assert.Empty(t, books)

	err = r.DeleteBook(ctx, book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func Test_ListBooksWithActiveCounts(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()

	book := seedBook(t, r, "978-0-13-468599-1", 3)
	alice := seedUser(t, r, "alice", false)
	bob := seedUser(t, r, "bob", false)

	_, err := r.BorrowBook(ctx, alice.ID, book.ID)
	require.NoError(t, err)
	_, err = r.BorrowBook(ctx, bob.ID, book.ID)
	require.NoError(t, err)

	res, err := r.ListBooksWithActiveCounts(ctx, AdminBooksQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	require.Len(t, res.Books, 1)
	assert.Equal(t, int64(2), res.Books[0].ActiveLoans)
	assert.Equal(t, 1, res.Books[0].AvailableCopies)

	exhausted, err := r.ListBooksWithActiveCounts(ctx, AdminBooksQuery{Status: "exhausted"})
	require.NoError(t, err)
	assert.Empty(t, exhausted.Books)
}

func Test_CreateUser_Duplicate(t *testing.T) {
	r := openTestRepo(t)

	seedUser(t, r, "alice", false)

	dup := &models.User{
		ID:           uuid.NewString(),
		Username:     "alice",
		Email:        "alice2@example.com",
		PasswordHash: "x",
	}
	err := r.CreateUser(context.Background(), dup)
	assert.ErrorIs(t, err, ErrUserExists)

	dupEmail := &models.User{
		ID:           uuid.NewString(),
		Username:     "alice2",
		Email:        "alice@example.com",
		PasswordHash: "x",
	}
	err = r.CreateUser(context.Background(), dupEmail)
	assert.ErrorIs(t, err, ErrUserExists)
}
