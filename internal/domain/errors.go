package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrMovieNotFound      = errors.New("movie not found")
	ErrGenreNotFound      = errors.New("genre not found")
	ErrDirectorNotFound   = errors.New("director not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrForbidden          = errors.New("authenticated user does not own this resource")
	ErrAlreadyFavorited   = errors.New("movie is already in favorites")
	ErrNotFavorited       = errors.New("movie is not in favorites")
	ErrInvalidCursor      = errors.New("invalid pagination cursor")
)
