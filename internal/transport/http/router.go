package httptransport

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/askarbek/moviehub/internal/repository"
	"github.com/askarbek/moviehub/internal/token"
	"github.com/askarbek/moviehub/internal/transport/http/handler"
	"github.com/askarbek/moviehub/internal/transport/http/middleware"
)

const requestTimeout = 10 * time.Second

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	movieHandler *handler.MovieHandler,
	users repository.UserRepository,
	tokens *token.Service,
	policy CredentialPolicy,
) (*gin.Engine, error) {
	if err := registerValidations(policy); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Timeout(requestTimeout))

	authMW := middleware.Auth(tokens, users, logger)
	self := middleware.RequireSelf()

	// Public routes
	r.POST("/users", userHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// Protected user routes; mutations additionally require that the
	// authenticated identity owns the target account.
	r.GET("/users", authMW, userHandler.List)
	r.GET("/users/me", authMW, userHandler.Me)
	r.GET("/users/:username", authMW, userHandler.Get)
	r.PUT("/users/:username", authMW, self, userHandler.Update)
	r.DELETE("/users/:username", authMW, self, userHandler.Delete)
	r.POST("/users/:username/movies/:movieId", authMW, self, userHandler.AddFavorite)
	r.DELETE("/users/:username/movies/:movieId", authMW, self, userHandler.RemoveFavorite)

	// Protected catalog routes
	movies := r.Group("/movies", authMW)
	movies.GET("", movieHandler.List)
	movies.GET("/:id", movieHandler.Get)
	movies.GET("/genre/:name", movieHandler.GetGenre)
	movies.GET("/director/:name", movieHandler.GetDirector)

	return r, nil
}
