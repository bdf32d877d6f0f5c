package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/repository"
)

type MovieUsecase struct {
	movies repository.MovieRepository
}

func NewMovieUsecase(movies repository.MovieRepository) *MovieUsecase {
	return &MovieUsecase{movies: movies}
}

type ListMoviesInput struct {
	Cursor string
	Limit  int
}

type ListMoviesResult struct {
	Movies     []*domain.Movie
	NextCursor *string
}

type movieCursor struct {
	CreatedAt time.Time `json:"c"`
	ID        string    `json:"i"`
}

func decodeMovieCursor(s string) (*time.Time, string, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, "", fmt.Errorf("decode cursor: %w", err)
	}
	var c movieCursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, "", fmt.Errorf("unmarshal cursor: %w", err)
	}
	return &c.CreatedAt, c.ID, nil
}

func encodeMovieCursor(createdAt time.Time, id string) string {
	b, _ := json.Marshal(movieCursor{CreatedAt: createdAt, ID: id})
	return base64.RawURLEncoding.EncodeToString(b)
}

func (u *MovieUsecase) List(ctx context.Context, input ListMoviesInput) (ListMoviesResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	repoInput := repository.ListMoviesInput{Limit: limit + 1}
	if input.Cursor != "" {
		cursorTime, cursorID, err := decodeMovieCursor(input.Cursor)
		if err != nil {
			return ListMoviesResult{}, domain.ErrInvalidCursor
		}
		repoInput.CursorTime = cursorTime
		repoInput.CursorID = cursorID
	}

	movies, err := u.movies.List(ctx, repoInput)
	if err != nil {
		return ListMoviesResult{}, fmt.Errorf("list movies: %w", err)
	}

	var nextCursor *string
	if len(movies) == limit+1 {
		movies = movies[:limit]
		last := movies[limit-1]
		s := encodeMovieCursor(last.CreatedAt, last.ID)
		nextCursor = &s
	}

	return ListMoviesResult{Movies: movies, NextCursor: nextCursor}, nil
}

// Get resolves a catalog movie by UUID; anything that is not a UUID is
// treated as an exact (case-insensitive) title.
func (u *MovieUsecase) Get(ctx context.Context, idOrTitle string) (*domain.Movie, error) {
	if _, err := uuid.Parse(idOrTitle); err == nil {
		m, err := u.movies.FindByID(ctx, idOrTitle)
		if err != nil {
			return nil, fmt.Errorf("get movie: %w", err)
		}
		return m, nil
	}

	m, err := u.movies.FindByTitle(ctx, idOrTitle)
	if err != nil {
		return nil, fmt.Errorf("get movie by title: %w", err)
	}
	return m, nil
}

func (u *MovieUsecase) GetGenre(ctx context.Context, name string) (*domain.Genre, error) {
	g, err := u.movies.FindGenre(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return g, nil
}

func (u *MovieUsecase) GetDirector(ctx context.Context, name string) (*domain.Director, error) {
	d, err := u.movies.FindDirector(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get director: %w", err)
	}
	return d, nil
}
