package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/ErlanBelekov/project-tracker/internal/email"
	"github.com/ErlanBelekov/project-tracker/internal/metrics"
	"github.com/ErlanBelekov/project-tracker/internal/repository"
)

type passwordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type tokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher passwordHasher
	tokens tokenIssuer
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, hasher passwordHasher, tokens tokenIssuer, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

// Signup hashes the password and stores a new user. A taken email yields
// domain.ErrDuplicateEmail and leaves the existing account untouched.
func (u *AuthUsecase) Signup(ctx context.Context, emailAddr, password string) (*domain.User, error) {
	emailAddr = domain.NormalizeEmail(emailAddr)

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	user, err := u.users.Create(ctx, emailAddr, hash)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.AuthEventsTotal.WithLabelValues("signup", "duplicate_email").Inc()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.AuthEventsTotal.WithLabelValues("signup", "success").Inc()

	// The account exists at this point; a failed welcome email is not a failed signup.
	body := fmt.Sprintf(`<p>Your Project Tracker account for %s is ready.</p>`, html.EscapeString(user.Email))
	if err := u.email.Send(ctx, user.Email, "Welcome to Project Tracker", body); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Login looks the account up before comparing the password, and returns a
// signed session token for it.
//
// Unknown email and wrong password produce different errors, which lets a
// caller probe for registered emails.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, domain.NormalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthEventsTotal.WithLabelValues("login", "user_not_found").Inc()
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthEventsTotal.WithLabelValues("login", "invalid_credentials").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify password: %w", err)
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	metrics.AuthEventsTotal.WithLabelValues("login", "success").Inc()
	return token, nil
}

// CurrentUser resolves the authenticated subject to its stored account.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
