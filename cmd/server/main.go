package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/askarbek/moviehub/config"
	"github.com/askarbek/moviehub/internal/email"
	"github.com/askarbek/moviehub/internal/health"
	"github.com/askarbek/moviehub/internal/infrastructure/postgres"
	ctxlog "github.com/askarbek/moviehub/internal/log"
	"github.com/askarbek/moviehub/internal/metrics"
	"github.com/askarbek/moviehub/internal/migrate"
	"github.com/askarbek/moviehub/internal/token"
	httptransport "github.com/askarbek/moviehub/internal/transport/http"
	"github.com/askarbek/moviehub/internal/transport/http/handler"
	"github.com/askarbek/moviehub/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	movieRepo := postgres.NewMovieRepository(pool)

	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, tokens, emailSender, logger)
	userUsecase := usecase.NewUserUsecase(userRepo)
	movieUsecase := usecase.NewMovieUsecase(movieRepo)

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	userHandler := handler.NewUserHandler(authUsecase, userUsecase, logger)
	movieHandler := handler.NewMovieHandler(movieUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	router, err := httptransport.NewRouter(logger, authHandler, userHandler, movieHandler,
		userRepo, tokens, httptransport.CredentialPolicy{
			UsernameMinLen: cfg.UsernameMinLen,
			PasswordMinLen: cfg.PasswordMinLen,
			Complex:        cfg.PasswordComplex,
		})
	if err != nil {
		stop()
		log.Fatalf("router: %v", err)
	}

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
