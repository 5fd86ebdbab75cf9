package auth

import (
	"testing"
	"time"

	"github.com/hvisser/gatehouse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = models.User{
	ID:    "b2f7c0de-9a41-4c3e-8f2a-1d5e6b7a8c9d",
	Email: "a@b.com",
	Name:  "A B",
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	token, err := issuer.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, ok := issuer.Verify(token)
	require.True(t, ok)
	assert.Equal(t, testUser.ID, claims.UserID)
	assert.Equal(t, testUser.Email, claims.Email)
	assert.Equal(t, testUser.Name, claims.Name)
}

func TestTokenIssuer_ExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)

	token, err := issuer.Issue(testUser)
	require.NoError(t, err)

	claims, ok := issuer.Verify(token)
	assert.False(t, ok)
	assert.Nil(t, claims)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret-one"), time.Hour)
	other := NewTokenIssuer([]byte("secret-two"), time.Hour)

	token, err := issuer.Issue(testUser)
	require.NoError(t, err)

	_, ok := other.Verify(token)
	assert.False(t, ok)
}

func TestTokenIssuer_MalformedTokens(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	token, err := issuer.Issue(testUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"truncated", token[:len(token)-10]},
		{"tampered signature", token + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := issuer.Verify(tt.token)
			assert.False(t, ok)
			assert.Nil(t, claims)
		})
	}
}
