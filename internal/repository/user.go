package repository

import (
	"context"
	"time"

	"github.com/askarbek/moviehub/internal/domain"
)

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	Birthday     *time.Time
	PasswordHash *string
}

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, username string, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, username string) error

	// AddFavorite inserts in a single conditional statement; returns
	// domain.ErrAlreadyFavorited when the pair already exists and
	// domain.ErrMovieNotFound when the movie id does not reference a
	// catalog row. Concurrent mutations for the same user never lose updates.
	AddFavorite(ctx context.Context, userID, movieID string) error
	// RemoveFavorite deletes in a single statement; returns
	// domain.ErrNotFavorited when the pair was absent.
	RemoveFavorite(ctx context.Context, userID, movieID string) error
}
