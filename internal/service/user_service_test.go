package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func newTestUserService(t *testing.T) (*UserServiceImpl, *mocks.MockUserStore, *mocks.MockTokenStore) {
	t.Helper()
	userStore := mocks.NewMockUserStore()
	tokenStore := mocks.NewMockTokenStore()
	tokenService := auth.NewTokenService(tokenStore, 0, nil)
	// bcrypt cost 4 keeps the tests fast.
	svc := NewUserService(
		userStore,
		tokenService,
		auth.NewBcryptHasher(4),
		auth.NewBcryptVerifier(),
		mocks.NewMockTxRunner(),
		nil,
	)
	return svc, userStore, tokenStore
}

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()

	svc, userStore, tokenStore := newTestUserService(t)

	result, err := svc.Register(context.Background(), "Test User", "test@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, "Test User", result.User.Name)
	assert.Equal(t, "test@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)

	// The plaintext password must not survive registration.
	assert.Empty(t, result.User.Password)
	assert.NotEmpty(t, result.User.HashedPassword)
	assert.NotEqual(t, "password123", result.User.HashedPassword)

	// Registration issues a usable token.
	stored, err := tokenStore.GetByHash(context.Background(), auth.HashCredential(result.Token))
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.UserID)

	// And the user is persisted.
	saved, err := userStore.GetByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, saved.ID)
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "First", "dup@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Second", "dup@example.com", "password456")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserServiceRegisterInvalid(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "Test User", "test@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestUserServiceLogin(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestUserService(t)

	registered, err := svc.Register(context.Background(), "Test User", "login@example.com", "password123")
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	// Each login issues a distinct credential.
	assert.NotEqual(t, registered.Token, result.Token)
}

func TestUserServiceLoginBadCredentials(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "Test User", "known@example.com", "password123")
	require.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	_, err = svc.Login(context.Background(), "unknown@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "known@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceLogoutRevokesOnlyPresentedToken(t *testing.T) {
	t.Parallel()

	svc, _, tokenStore := newTestUserService(t)
	tokenService := auth.NewTokenService(tokenStore, 0, nil)

	registered, err := svc.Register(context.Background(), "Test User", "multi@example.com", "password123")
	require.NoError(t, err)

	second, err := svc.Login(context.Background(), "multi@example.com", "password123")
	require.NoError(t, err)

	firstToken, err := tokenService.Authenticate(context.Background(), registered.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), firstToken.ID))

	// The revoked credential no longer authenticates.
	_, err = tokenService.Authenticate(context.Background(), registered.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// The other session is untouched.
	_, err = tokenService.Authenticate(context.Background(), second.Token)
	assert.NoError(t, err)

	// Logout is idempotent.
	assert.NoError(t, svc.Logout(context.Background(), firstToken.ID))
}

func TestUserServiceGetUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestUserService(t)

	registered, err := svc.Register(context.Background(), "Test User", "get@example.com", "password123")
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "get@example.com", user.Email)

	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
