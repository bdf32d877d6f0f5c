package repository

import (
	"context"
	"time"

	"github.com/askarbek/moviehub/internal/domain"
)

type ListMoviesInput struct {
	CursorTime *time.Time // cursor on (created_at ASC, id ASC); nil = first page
	CursorID   string     // used only when CursorTime is non-nil
	Limit      int
}

type MovieRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	FindByTitle(ctx context.Context, title string) (*domain.Movie, error)
	List(ctx context.Context, input ListMoviesInput) ([]*domain.Movie, error)
	// FindGenre and FindDirector return the embedded subdocument of the
	// first catalog movie matching the given name.
	FindGenre(ctx context.Context, name string) (*domain.Genre, error)
	FindDirector(ctx context.Context, name string) (*domain.Director, error)
}
