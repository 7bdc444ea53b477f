package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("u-1", "Ana", "ana@example.com", "hash", time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("ANA@example.com").
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "ANA@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, "hash", user.PasswordHash)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		u := &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"}
		mock.ExpectExec("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), "Ana", "ana@example.com", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, u))
		assert.NotEmpty(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		u := &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"}
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.Create(ctx, u)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow("u-1", "Ana", "ana@example.com", "h1", time.Now(), time.Now()).
		AddRow("u-2", "Bruno", "bruno@example.com", "h2", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY name").WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Bruno", users[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
