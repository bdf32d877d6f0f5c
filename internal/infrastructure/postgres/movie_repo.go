package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/repository"
)

const movieColumns = `id, title, release_year, genre_name, genre_description,
	director_name, director_bio, director_birth_year, director_death_year,
	description, image_url, featured, created_at, updated_at`

type MovieRepository struct {
	db DB
}

func NewMovieRepository(db DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	row := r.db.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
	return scanMovie(row)
}

func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE LOWER(title) = LOWER($1) LIMIT 1`, title)
	return scanMovie(row)
}

func (r *MovieRepository) List(ctx context.Context, input repository.ListMoviesInput) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies`
	args := []any{}

	if input.CursorTime != nil {
		query += ` WHERE (created_at, id) > ($1, $2)`
		args = append(args, *input.CursorTime, input.CursorID)
	}
	args = append(args, input.Limit)
	query += fmt.Sprintf(` ORDER BY created_at ASC, id ASC LIMIT $%d`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (r *MovieRepository) FindGenre(ctx context.Context, name string) (*domain.Genre, error) {
	row := r.db.QueryRow(ctx,
		`SELECT genre_name, genre_description FROM movies
		WHERE LOWER(genre_name) = LOWER($1) LIMIT 1`, name)

	var g domain.Genre
	if err := row.Scan(&g.Name, &g.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGenreNotFound
		}
		return nil, fmt.Errorf("scan genre: %w", err)
	}
	return &g, nil
}

func (r *MovieRepository) FindDirector(ctx context.Context, name string) (*domain.Director, error) {
	row := r.db.QueryRow(ctx,
		`SELECT director_name, director_bio, director_birth_year, director_death_year
		FROM movies WHERE LOWER(director_name) = LOWER($1) LIMIT 1`, name)

	var d domain.Director
	if err := row.Scan(&d.Name, &d.Bio, &d.BirthYear, &d.DeathYear); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDirectorNotFound
		}
		return nil, fmt.Errorf("scan director: %w", err)
	}
	return &d, nil
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(
		&m.ID, &m.Title, &m.ReleaseYear,
		&m.Genre.Name, &m.Genre.Description,
		&m.Director.Name, &m.Director.Bio, &m.Director.BirthYear, &m.Director.DeathYear,
		&m.Description, &m.ImageURL, &m.Featured,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("scan movie: %w", err)
	}
	return &m, nil
}
