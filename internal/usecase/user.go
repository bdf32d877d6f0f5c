package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/metrics"
	"github.com/askarbek/moviehub/internal/password"
	"github.com/askarbek/moviehub/internal/repository"
)

type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) List(ctx context.Context) ([]*domain.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

type UpdateInput struct {
	Name     *string
	Email    *string
	Birthday *time.Time
	Password *string // re-hashed when present
}

func (u *UserUsecase) Update(ctx context.Context, username string, input UpdateInput) (*domain.User, error) {
	upd := repository.UserUpdate{
		Name:     input.Name,
		Email:    input.Email,
		Birthday: input.Birthday,
	}
	if input.Password != nil {
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}

	updated, err := u.users.Update(ctx, username, upd)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (u *UserUsecase) Delete(ctx context.Context, username string) error {
	if err := u.users.Delete(ctx, username); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// AddFavorite appends movieID to the user's favorites. The repository does
// this in one conditional statement, so two concurrent adds of the same
// movie resolve to exactly one success and one domain.ErrAlreadyFavorited.
func (u *UserUsecase) AddFavorite(ctx context.Context, userID, movieID string) error {
	if err := u.users.AddFavorite(ctx, userID, movieID); err != nil {
		metrics.FavoriteMutationsTotal.WithLabelValues("add", outcomeLabel(err)).Inc()
		return fmt.Errorf("add favorite: %w", err)
	}
	metrics.FavoriteMutationsTotal.WithLabelValues("add", "success").Inc()
	return nil
}

func (u *UserUsecase) RemoveFavorite(ctx context.Context, userID, movieID string) error {
	if err := u.users.RemoveFavorite(ctx, userID, movieID); err != nil {
		metrics.FavoriteMutationsTotal.WithLabelValues("remove", outcomeLabel(err)).Inc()
		return fmt.Errorf("remove favorite: %w", err)
	}
	metrics.FavoriteMutationsTotal.WithLabelValues("remove", "success").Inc()
	return nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	default:
		return "rejected"
	}
}
