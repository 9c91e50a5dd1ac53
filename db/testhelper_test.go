package db

import (
	"context"
	"os"
	"testing"

	"library_api/auth"
	"library_api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 集成测试需要一个真实 Postgres：
//
//	LIBRARY_TEST_DSN="host=127.0.0.1 user=postgres dbname=library_test port=5432 sslmode=disable" go test ./db/
//
// 未设置时跳过。
func openTestRepo(t *testing.T) *Repo {
	t.Helper()

	dsn := os.Getenv("LIBRARY_TEST_DSN")
	if dsn == "" {
		t.Skip("LIBRARY_TEST_DSN not set, skipping integration test")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	// 每个测试从干净的表开始
	for _, table := range []string{"lib_audit_log", models.LoanTable, models.BookTable, "lib_users"} {
		require.NoError(t, conn.Exec("DELETE FROM "+table).Error)
	}

	return NewRepo(conn)
}

func seedUser(t *testing.T, r *Repo, username string, admin bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password-" + username)
	require.NoError(t, err)
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		DisplayName:  username,
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func seedBook(t *testing.T, r *Repo, isbn string, copies int) *models.Book {
	t.Helper()

	b := &models.Book{
		ID:              uuid.NewString(),
		Title:           "Book " + isbn,
		Author:          "Author " + isbn,
		ISBN:            isbn,
		TotalCopies:     copies,
		AvailableCopies: copies,
	}
	require.NoError(t, r.CreateBook(context.Background(), b))
	return b
}
