package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/repository"
)

const userColumns = `id, username, password_hash, name, email, birthday, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password_hash, name, email, birthday)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Name,
		user.Email,
		user.Birthday,
	)

	created, err := scanUser(row)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, err
	}
	created.FavoriteMovieIDs = []string{}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.db.QueryRow(ctx, query, arg)
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}

	favorites, err := r.favoritesFor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.FavoriteMovieIDs = favorites
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	byID := make(map[string]*domain.User)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		u.FavoriteMovieIDs = []string{}
		users = append(users, u)
		byID[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	// One pass over the favorites table instead of a query per user.
	favRows, err := r.db.Query(ctx,
		`SELECT user_id, movie_id FROM user_favorites ORDER BY created_at ASC, movie_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer favRows.Close()

	for favRows.Next() {
		var userID, movieID string
		if err := favRows.Scan(&userID, &movieID); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		if u, ok := byID[userID]; ok {
			u.FavoriteMovieIDs = append(u.FavoriteMovieIDs, movieID)
		}
	}
	if err := favRows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, username string, upd repository.UserUpdate) (*domain.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{username}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Birthday != nil {
		add("birthday", *upd.Birthday)
	}
	if upd.PasswordHash != nil {
		add("password_hash", *upd.PasswordHash)
	}

	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE username = $1 RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, args...)
	u, err := scanUser(row)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, err
	}

	favorites, err := r.favoritesFor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.FavoriteMovieIDs = favorites
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddFavorite is a single conditional insert: the composite primary key
// rejects duplicates and the movie FK rejects dangling ids, so no
// read-modify-write cycle exists to race.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, movieID string) error {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO user_favorites (user_id, movie_id) VALUES ($1, $2)
		ON CONFLICT (user_id, movie_id) DO NOTHING`,
		userID, movieID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			if strings.Contains(pgErr.ConstraintName, "movie") {
				return domain.ErrMovieNotFound
			}
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("add favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyFavorited
	}
	return nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, movieID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND movie_id = $2`,
		userID, movieID,
	)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (r *UserRepository) favoritesFor(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT movie_id FROM user_favorites WHERE user_id = $1 ORDER BY created_at ASC, movie_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	defer rows.Close()

	favorites := []string{}
	for rows.Next() {
		var movieID string
		if err := rows.Scan(&movieID); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, movieID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	return favorites, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email,
		&u.Birthday, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return domain.ErrEmailTaken
	}
	return domain.ErrUsernameTaken
}
