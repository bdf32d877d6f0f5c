package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/transport/http/middleware"
	"github.com/askarbek/moviehub/internal/usecase"
)

const birthdayLayout = "2006-01-02"

type registerer interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
}

type userUsecaser interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, username string, input usecase.UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, userID, movieID string) error
	RemoveFavorite(ctx context.Context, userID, movieID string) error
}

type UserHandler struct {
	auth   registerer
	users  userUsecaser
	logger *slog.Logger
}

func NewUserHandler(auth registerer, users userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		auth:   auth,
		users:  users,
		logger: logger.With("component", "user_handler"),
	}
}

// userResponse deliberately has no slot for the password hash.
type userResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Birthday       string    `json:"birthday"`
	FavoriteMovies []string  `json:"favorite_movies"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	favorites := u.FavoriteMovieIDs
	if favorites == nil {
		favorites = []string{}
	}
	return userResponse{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		Email:          u.Email,
		Birthday:       u.Birthday.Format(birthdayLayout),
		FavoriteMovies: favorites,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Password string `json:"password" binding:"required,passwd"`
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Birthday string `json:"birthday" binding:"required,datetime=2006-01-02"`
}

// POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	birthday, _ := time.Parse(birthdayLayout, req.Birthday) // format already validated

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Birthday: birthday,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": errUsernameTaken})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
		default:
			h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// GET /users/me
// The access gate already resolved the caller, favorites included.
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// GET /users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateRequest struct {
	Name     *string `json:"name"     binding:"omitempty"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Birthday *string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	Password *string `json:"password" binding:"omitempty,passwd"`
}

// PUT /users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	input := usecase.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Birthday != nil {
		birthday, _ := time.Parse(birthdayLayout, *req.Birthday)
		input.Birthday = &birthday
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("username"), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// DELETE /users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	if err := h.users.Delete(c.Request.Context(), username); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User " + username + " deregistered"})
}

// POST /users/:username/movies/:movieId
func (h *UserHandler) AddFavorite(c *gin.Context) {
	movieID := c.Param("movieId")
	if _, err := uuid.Parse(movieID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errMovieNotFound})
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.users.AddFavorite(c.Request.Context(), user.ID, movieID); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyFavorited):
			c.JSON(http.StatusBadRequest, gin.H{"error": errAlreadyFavorite})
		case errors.Is(err, domain.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errMovieNotFound})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "add favorite", "movie_id", movieID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movie added to favorites", "movie_id": movieID})
}

// DELETE /users/:username/movies/:movieId
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	movieID := c.Param("movieId")
	if _, err := uuid.Parse(movieID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errMovieNotFound})
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.users.RemoveFavorite(c.Request.Context(), user.ID, movieID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFavorited):
			c.JSON(http.StatusBadRequest, gin.H{"error": errNotFavorite})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "remove favorite", "movie_id", movieID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movie removed from favorites", "movie_id": movieID})
}
