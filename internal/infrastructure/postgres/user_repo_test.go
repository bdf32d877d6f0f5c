package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/infrastructure/postgres"
)

var userCols = []string{
	"id", "username", "password_hash", "name", "email", "birthday", "created_at", "updated_at",
}

func userRow(id, username string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userCols).
		AddRow(id, username, "$2a$10$hash", "Alice", username+"@example.com", now, now, now)
}

func TestAddFavorite(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := postgres.NewUserRepository(mock)
	ctx := context.Background()

	t.Run("inserts new pair", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO user_favorites").
			WithArgs("u1", "m1").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, r.AddFavorite(ctx, "u1", "m1"))
	})

	t.Run("duplicate reported as already favorited", func(t *testing.T) {
		// ON CONFLICT DO NOTHING: zero rows affected, no error from postgres.
		mock.ExpectExec("INSERT INTO user_favorites").
			WithArgs("u1", "m1").
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		err := r.AddFavorite(ctx, "u1", "m1")
		assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
	})

	t.Run("dangling movie id reported as movie not found", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO user_favorites").
			WithArgs("u1", "gone").
			WillReturnError(&pgconn.PgError{
				Code:           "23503",
				ConstraintName: "user_favorites_movie_id_fkey",
			})

		err := r.AddFavorite(ctx, "u1", "gone")
		assert.ErrorIs(t, err, domain.ErrMovieNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavorite(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := postgres.NewUserRepository(mock)
	ctx := context.Background()

	t.Run("removes existing pair", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM user_favorites").
			WithArgs("u1", "m1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, r.RemoveFavorite(ctx, "u1", "m1"))
	})

	t.Run("absent pair reported as not favorited", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM user_favorites").
			WithArgs("u1", "m1").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := r.RemoveFavorite(ctx, "u1", "m1")
		assert.ErrorIs(t, err, domain.ErrNotFavorited)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := postgres.NewUserRepository(mock)
	ctx := context.Background()

	t.Run("found with favorites in insertion order", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("alice").
			WillReturnRows(userRow("u1", "alice"))
		mock.ExpectQuery("SELECT movie_id FROM user_favorites").
			WithArgs("u1").
			WillReturnRows(pgxmock.NewRows([]string{"movie_id"}).AddRow("m1").AddRow("m2"))

		u, err := r.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, []string{"m1", "m2"}, u.FavoriteMovieIDs)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("nobody").
			WillReturnError(pgx.ErrNoRows)

		_, err := r.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := postgres.NewUserRepository(mock)
	ctx := context.Background()
	user := &domain.User{Username: "alice", PasswordHash: "h", Name: "Alice", Email: "a@example.com"}

	t.Run("duplicate username", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Username, user.PasswordHash, user.Name, user.Email, user.Birthday).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		_, err := r.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Username, user.PasswordHash, user.Name, user.Email, user.Birthday).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := r.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
