package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskloop/taskloop-go/internal/model"
	"github.com/taskloop/taskloop-go/internal/repository"
	"github.com/taskloop/taskloop-go/internal/token"
)

func newTestAuthService() *AuthService {
	tokens := token.NewManager("test-access", "test-refresh", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(repository.NewMemoryUserRepository(), tokens)
}

func signupReq() model.SignupRequest {
	return model.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	}
}

func TestSignup(t *testing.T) {
	svc := newTestAuthService()

	resp, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	// The returned access token must verify and carry the new identity.
	claims, err := svc.tokens.VerifyAccess(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), signupReq())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupDuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	req := signupReq()
	req.Email = "ALICE@Example.COM"
	_, err = svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestLoginWrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(context.Background(), model.LoginRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})
	_, errUnknownEmail := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestRefresh(t *testing.T) {
	svc := newTestAuthService()

	signup, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), signup.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	// The new access token carries the same identity as the original.
	claims, err := svc.tokens.VerifyAccess(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, claims.UserID)
	assert.Equal(t, signup.User.Email, claims.Email)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestAuthService()

	signup, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), signup.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefreshExpired(t *testing.T) {
	tokens := token.NewManager("test-access", "test-refresh", time.Hour, time.Millisecond)
	svc := NewAuthService(repository.NewMemoryUserRepository(), tokens)

	signup, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Refresh(context.Background(), signup.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefreshGarbage(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestGetUser(t *testing.T) {
	svc := newTestAuthService()

	signup, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), signup.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = svc.GetUser(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
