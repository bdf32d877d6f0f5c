package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/email"
	"github.com/askarbek/moviehub/internal/metrics"
	"github.com/askarbek/moviehub/internal/password"
	"github.com/askarbek/moviehub/internal/repository"
	"github.com/askarbek/moviehub/internal/token"
)

type AuthUsecase struct {
	users  repository.UserRepository
	tokens *token.Service
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Service, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Birthday time.Time
}

// Register hashes the password and creates the user record. Duplicate
// username/email surface as domain.ErrUsernameTaken / domain.ErrEmailTaken.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	created, err := u.users.Create(ctx, &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Name:         input.Name,
		Email:        input.Email,
		Birthday:     input.Birthday,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RegistrationsTotal.Inc()

	// Welcome email is best effort: a delivery failure never fails the
	// registration that already committed.
	subject := "Welcome to MovieHub"
	body := fmt.Sprintf("<p>Hi %s, your account is ready. Happy watching!</p>", created.Name)
	if err := u.email.Send(ctx, created.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "welcome email failed", "username", created.Username, "error", err)
	}

	return created, nil
}

// Login verifies the credentials and returns the user together with a fresh
// bearer token. An unknown username is reported distinctly from a password
// mismatch; handlers decide how much of that distinction to expose.
func (u *AuthUsecase) Login(ctx context.Context, username, plaintext string) (*domain.User, string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	ok, err := password.Verify(plaintext, user.PasswordHash)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, "", err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID, user.Username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, signed, nil
}
