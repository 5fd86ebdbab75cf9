package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hvisser/gatehouse/internal/apperr"
	"github.com/hvisser/gatehouse/internal/auth"
	"github.com/hvisser/gatehouse/internal/database"
	"github.com/hvisser/gatehouse/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	db, err := database.New("file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return NewAuthService(store.NewUserStore(db), auth.NewPasswordHasher(bcrypt.MinCost))
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "a@b.com", "Abc123!", "A B")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "A B", user.Name)
	assert.Empty(t, user.PasswordHash)

	logged, err := s.Login(ctx, "a@b.com", "Abc123!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		email     string
		password  string
		userName  string
		wantField string
	}{
		{"empty email", "", "Abc123!", "A", "email"},
		{"malformed email", "not-an-email", "Abc123!", "A", "email"},
		{"short password", "a@b.com", "abc", "A", "password"},
		{"empty name", "a@b.com", "Abc123!", "", "name"},
		{"whitespace name", "a@b.com", "Abc123!", "   ", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, tt.email, tt.password, tt.userName)
			ve, ok := apperr.AsValidation(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			assert.Contains(t, ve.Fields, tt.wantField)
		})
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "a@b.com", "Abc123!", "First")
	require.NoError(t, err)

	_, err = s.Register(ctx, "a@b.com", "Other9!", "Second")
	assert.True(t, apperr.IsConflict(err))
}

func TestAuthService_EmailCanonicalization(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "  A@B.com ", "Abc123!", "A B")
	require.NoError(t, err)

	// Same address in a different case is the same account, both for
	// uniqueness and for login.
	_, err = s.Register(ctx, "a@B.COM", "Other9!", "Imposter")
	assert.True(t, apperr.IsConflict(err))

	logged, err := s.Login(ctx, "A@b.Com", "Abc123!")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", logged.Email)
}

func TestAuthService_LoginFailures(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "a@b.com", "Abc123!", "A B")
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(ctx, "nobody@b.com", "Abc123!")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(ctx, "a@b.com", "wrong-password")
		assert.True(t, errors.Is(err, apperr.ErrInvalidCredentials))
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "a@b.com", "Abc123!", "A B")
	require.NoError(t, err)

	got, err := s.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.PasswordHash)

	_, err = s.CurrentUser(ctx, "no-such-id")
	assert.True(t, apperr.IsNotFound(err))
}
