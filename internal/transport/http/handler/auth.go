package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askarbek/moviehub/internal/domain"
)

// loginer is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type loginer interface {
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

type AuthHandler struct {
	auth   loginer
	logger *slog.Logger
}

func NewAuthHandler(auth loginer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger.With("component", "auth_handler"),
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
// Returns {"message": ..., "token": ...} on success. An unknown username is
// a 404, a wrong password a 400; both outcomes are logged distinctly.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	_, signed, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			h.logger.InfoContext(c.Request.Context(), "login for unknown user", "username", req.Username)
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.logger.InfoContext(c.Request.Context(), "login with bad password", "username", req.Username)
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCreds})
		default:
			h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": signed})
}
