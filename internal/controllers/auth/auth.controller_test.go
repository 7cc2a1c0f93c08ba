package authController

import (
	"context"
	"testing"

	"speedballhub/config"
	"speedballhub/internal/database"
	. "speedballhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) *AuthController {
	t.Helper()

	controller, err := New(database.DB{}, config.Config{
		AdminEmail:    "admin@rowad.com",
		AdminPassword: "correct horse battery",
		SessionSecret: "test-session-secret",
	})
	require.NoError(t, err)
	return controller
}

func TestLogin_Success(t *testing.T) {
	auth := newTestAuth(t)

	session, err := auth.Login(context.Background(), &LoginRequest{
		Email:    "admin@rowad.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "admin@rowad.com", session.User.Email)
}

func TestLogin_TokensAreUnique(t *testing.T) {
	auth := newTestAuth(t)

	request := &LoginRequest{Email: "admin@rowad.com", Password: "correct horse battery"}

	first, err := auth.Login(context.Background(), request)
	require.NoError(t, err)
	second, err := auth.Login(context.Background(), request)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestLogin_MissingFields(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.Login(context.Background(), &LoginRequest{})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := newTestAuth(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong email", "someone@rowad.com", "correct horse battery"},
		{"wrong password", "admin@rowad.com", "guess"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(context.Background(), &LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			// Wrong email and wrong password are indistinguishable to the caller.
			var authErr *AuthenticationError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, "invalid credentials", authErr.Message)
		})
	}
}

func TestLogin_TokensAreSigned(t *testing.T) {
	auth := newTestAuth(t)

	session, err := auth.Login(context.Background(), &LoginRequest{
		Email:    "admin@rowad.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.Contains(t, session.Token, ".")
	assert.True(t, auth.validToken(session.Token))

	// Flipping a character invalidates the signature.
	tampered := session.Token[:len(session.Token)-1] + "!"
	assert.False(t, auth.validToken(tampered))

	// A token minted under one secret does not verify under another.
	other, err := New(database.DB{}, config.Config{
		AdminEmail:    "admin@rowad.com",
		AdminPassword: "correct horse battery",
		SessionSecret: "different-secret",
	})
	require.NoError(t, err)
	assert.False(t, other.validToken(session.Token))

	_, ok := other.Verify(context.Background(), session.Token)
	assert.False(t, ok)
}

func TestVerify_EmptyAndUnknownTokens(t *testing.T) {
	auth := newTestAuth(t)

	_, ok := auth.Verify(context.Background(), "")
	assert.False(t, ok)

	_, ok = auth.Verify(context.Background(), "not-a-session")
	assert.False(t, ok)
}

func TestLogout_EmptyTokenIsNoop(t *testing.T) {
	auth := newTestAuth(t)

	require.NoError(t, auth.Logout(context.Background(), ""))
}
