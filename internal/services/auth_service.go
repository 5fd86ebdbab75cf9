package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/hvisser/gatehouse/internal/apperr"
	"github.com/hvisser/gatehouse/internal/auth"
	"github.com/hvisser/gatehouse/internal/models"
	"github.com/hvisser/gatehouse/internal/store"
)

const minPasswordLength = 6

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Register(ctx context.Context, email, password, name string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CurrentUser(ctx context.Context, id string) (models.User, error)
}

// AuthService provides business logic for registration and login.
type AuthService struct {
	users  store.UserStoreProvider
	hasher *auth.PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(users store.UserStoreProvider, hasher *auth.PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// Register validates the input, hashes the password and creates the
// account. The returned user never carries the password hash.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (models.User, error) {
	email = canonicalEmail(email)
	name = strings.TrimSpace(name)

	if err := validateRegistration(email, password, name); err != nil {
		return models.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, hash, name)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies a user's credentials. An unknown email yields
// apperr.ErrNotFound and a wrong password apperr.ErrInvalidCredentials;
// the distinction is for logs, the HTTP layer collapses both.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, canonicalEmail(email))
	if err != nil {
		return models.User{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, apperr.ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// CurrentUser resolves the account behind a verified session token.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (models.User, error) {
	return s.users.FindByID(ctx, id)
}

// canonicalEmail trims and lowercases, making email uniqueness
// effectively case-insensitive.
func canonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(email, password, name string) error {
	fields := make(map[string]string)

	if email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "email is not a valid address"
	}

	if len(password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}

	if name == "" {
		fields["name"] = "name is required"
	}

	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}
