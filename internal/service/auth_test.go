package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/security"
)

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	users := new(mockUserRepo)
	tokens := security.NewTokenManager("test-secret-that-is-long-enough!!", 60)
	svc := NewAuthService(users, tokens)

	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "s3cret-pass"),
		Role:         domain.UserRoleManager,
	}, nil)

	token, user, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.UserRoleManager, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, security.NewTokenManager("test-secret-that-is-long-enough!!", 60))

	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           "u1",
		PasswordHash: hashPassword(t, "s3cret-pass"),
	}, nil)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")

	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, security.NewTokenManager("test-secret-that-is-long-enough!!", 60))

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.NewNotFound("user"))

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

	// A missing account reads the same as a bad password.
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
