package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/askarbek/moviehub/internal/domain"
	"github.com/askarbek/moviehub/internal/password"
	"github.com/askarbek/moviehub/internal/repository"
	"github.com/askarbek/moviehub/internal/token"
	"github.com/askarbek/moviehub/internal/usecase"
)

// ---- fakes ----

type fakeUserRepo struct {
	create         func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByUsername func(ctx context.Context, username string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.create(ctx, user)
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findByUsername(ctx, username)
}

func (r *fakeUserRepo) FindByID(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeUserRepo) List(context.Context) ([]*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeUserRepo) Update(context.Context, string, repository.UserUpdate) (*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeUserRepo) Delete(context.Context, string) error { return errors.New("not implemented") }
func (r *fakeUserRepo) AddFavorite(context.Context, string, string) error {
	return errors.New("not implemented")
}
func (r *fakeUserRepo) RemoveFavorite(context.Context, string, string) error {
	return errors.New("not implemented")
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

// ---- helpers ----

var testTokens = token.NewService([]byte("usecase-test-secret-32-chars-ok!!"), time.Hour)

func silentSender() *fakeEmailSender {
	return &fakeEmailSender{send: func(context.Context, string, string, string) error { return nil }}
}

func newAuthUsecase(repo *fakeUserRepo, sender *fakeEmailSender) *usecase.AuthUsecase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecase.NewAuthUsecase(repo, testTokens, sender, logger)
}

// ---- Register ----

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	var stored *domain.User
	repo := &fakeUserRepo{
		create: func(_ context.Context, user *domain.User) (*domain.User, error) {
			stored = user
			out := *user
			out.ID = "user-1"
			return &out, nil
		},
	}

	created, err := newAuthUsecase(repo, silentSender()).Register(context.Background(), usecase.RegisterInput{
		Username: "alice",
		Password: "Password1!",
		Name:     "Alice",
		Email:    "alice@example.com",
		Birthday: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID != "user-1" {
		t.Errorf("ID = %q, want user-1", created.ID)
	}
	if stored.PasswordHash == "Password1!" {
		t.Fatal("password stored as plaintext")
	}
	ok, err := password.Verify("Password1!", stored.PasswordHash)
	if err != nil || !ok {
		t.Errorf("stored hash does not verify the original password: ok=%v err=%v", ok, err)
	}
}

func TestRegister_SendsWelcomeEmail(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(_ context.Context, user *domain.User) (*domain.User, error) {
			return user, nil
		},
	}
	var sentTo string
	sender := &fakeEmailSender{
		send: func(_ context.Context, to, _, _ string) error {
			sentTo = to
			return nil
		},
	}

	_, err := newAuthUsecase(repo, sender).Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "Password1!", Name: "Alice", Email: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sentTo != "alice@example.com" {
		t.Errorf("welcome email sent to %q", sentTo)
	}
}

func TestRegister_EmailFailureDoesNotFailRegistration(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(_ context.Context, user *domain.User) (*domain.User, error) {
			return user, nil
		},
	}
	sender := &fakeEmailSender{
		send: func(context.Context, string, string, string) error {
			return errors.New("smtp is on fire")
		},
	}

	if _, err := newAuthUsecase(repo, sender).Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "Password1!", Name: "Alice", Email: "alice@example.com",
	}); err != nil {
		t.Fatalf("register failed on email error: %v", err)
	}
}

func TestRegister_DuplicateUsernamePassesThrough(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}

	_, err := newAuthUsecase(repo, silentSender()).Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "Password1!", Name: "Alice", Email: "alice@example.com",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
}

// ---- Login ----

func registeredRepo(t *testing.T) *fakeUserRepo {
	t.Helper()
	hash, err := password.Hash("Password1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{ID: "user-1", Username: "alice", PasswordHash: hash}
	return &fakeUserRepo{
		findByUsername: func(_ context.Context, username string) (*domain.User, error) {
			if username == user.Username {
				return user, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
}

func TestLogin_Success_TokenDecodesToUser(t *testing.T) {
	uc := newAuthUsecase(registeredRepo(t), silentSender())

	user, signed, err := uc.Login(context.Background(), "alice", "Password1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("user = %q, want alice", user.Username)
	}

	claims, err := testTokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" {
		t.Errorf("claims = %+v, want user-1/alice", claims)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	uc := newAuthUsecase(registeredRepo(t), silentSender())

	_, _, err := uc.Login(context.Background(), "nobody", "Password1!")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := newAuthUsecase(registeredRepo(t), silentSender())

	_, _, err := uc.Login(context.Background(), "alice", "password1!")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}
