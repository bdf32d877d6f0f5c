package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/usecase"
)

type movieUsecaser interface {
	List(ctx context.Context, input usecase.ListMoviesInput) (usecase.ListMoviesResult, error)
	Get(ctx context.Context, idOrTitle string) (*domain.Movie, error)
	GetGenre(ctx context.Context, name string) (*domain.Genre, error)
	GetDirector(ctx context.Context, name string) (*domain.Director, error)
}

type MovieHandler struct {
	movies movieUsecaser
	logger *slog.Logger
}

func NewMovieHandler(movies movieUsecaser, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{movies: movies, logger: logger.With("component", "movie_handler")}
}

type movieResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	ReleaseYear int             `json:"release_year"`
	Genre       domain.Genre    `json:"genre"`
	Director    domain.Director `json:"director"`
	Description string          `json:"description"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Featured    bool            `json:"featured"`
}

func toMovieResponse(m *domain.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		Director:    m.Director,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Featured:    m.Featured,
	}
}

// GET /movies?cursor=...&limit=...
func (h *MovieHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.movies.List(c.Request.Context(), usecase.ListMoviesInput{
		Cursor: c.Query("cursor"),
		Limit:  limit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errBadCursor})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "list movies", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]movieResponse, 0, len(result.Movies))
	for _, m := range result.Movies {
		out = append(out, toMovieResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{"movies": out, "next_cursor": result.NextCursor})
}

// GET /movies/:id — :id is a UUID or an exact title.
func (h *MovieHandler) Get(c *gin.Context) {
	movie, err := h.movies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errMovieNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get movie", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, toMovieResponse(movie))
}

// GET /movies/genre/:name
func (h *MovieHandler) GetGenre(c *gin.Context) {
	genre, err := h.movies.GetGenre(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrGenreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errGenreNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get genre", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, genre)
}

// GET /movies/director/:name
func (h *MovieHandler) GetDirector(c *gin.Context) {
	director, err := h.movies.GetDirector(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrDirectorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errDirectorNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get director", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, director)
}
