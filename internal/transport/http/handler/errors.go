package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	errInternalServer   = "Internal server error"
	errUserNotFound     = "User not found"
	errMovieNotFound    = "Movie not found"
	errGenreNotFound    = "Genre not found"
	errDirectorNotFound = "Director not found"
	errInvalidCreds     = "Invalid credentials"
	errUsernameTaken    = "Username already taken"
	errEmailTaken       = "Email already in use"
	errAlreadyFavorite  = "Movie is already in favorites"
	errNotFavorite      = "Movie is not in favorites"
	errBadCursor        = "Invalid pagination cursor"
)

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// bindingError turns a ShouldBindJSON failure into a structured 400 body.
// Validator failures are reported per field, all of them, not just the
// first; anything else (malformed JSON) gets a generic message.
func bindingError(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"error": "Malformed request body"}
	}

	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return gin.H{"error": "Validation failed", "fields": fields}
}
