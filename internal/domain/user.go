package domain

import (
	"time"
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Email        string
	Birthday     time.Time

	// IDs of favorited movies, oldest first. Never contains duplicates;
	// the storage layer enforces this with a composite primary key.
	FavoriteMovieIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
