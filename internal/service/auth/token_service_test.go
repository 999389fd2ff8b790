package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

func TestTokenServiceIssueAndAuthenticate(t *testing.T) {
	t.Parallel()

	tokenStore := mocks.NewMockTokenStore()
	svc := auth.NewTokenService(tokenStore, 0, nil)
	userID := uuid.New()

	credential, token, err := svc.Issue(context.Background(), userID)
	require.NoError(t, err)

	assert.Len(t, credential, 64) // 32 random bytes, hex encoded
	assert.Equal(t, userID, token.UserID)
	assert.Nil(t, token.ExpiresAt)

	// Only the hash is stored, never the credential itself.
	assert.NotEqual(t, credential, token.TokenHash)
	assert.Equal(t, auth.HashCredential(credential), token.TokenHash)

	resolved, err := svc.Authenticate(context.Background(), credential)
	require.NoError(t, err)
	assert.Equal(t, token.ID, resolved.ID)
	assert.Equal(t, userID, resolved.UserID)
}

func TestTokenServiceAuthenticateInvalid(t *testing.T) {
	t.Parallel()

	svc := auth.NewTokenService(mocks.NewMockTokenStore(), 0, nil)

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.Authenticate(context.Background(), "nonexistent-credential")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenServiceExpiry(t *testing.T) {
	t.Parallel()

	tokenStore := mocks.NewMockTokenStore()
	svc := auth.NewTokenService(tokenStore, time.Minute, nil)

	credential, token, err := svc.Issue(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, token.ExpiresAt)

	// Fresh token authenticates.
	_, err = svc.Authenticate(context.Background(), credential)
	require.NoError(t, err)

	// Backdate the expiry to simulate time passing.
	expired := time.Now().UTC().Add(-time.Second)
	stored := tokenStore.Tokens[token.TokenHash]
	stored.ExpiresAt = &expired

	_, err = svc.Authenticate(context.Background(), credential)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestTokenServiceRevoke(t *testing.T) {
	t.Parallel()

	tokenStore := mocks.NewMockTokenStore()
	svc := auth.NewTokenService(tokenStore, 0, nil)
	userID := uuid.New()

	firstCred, firstToken, err := svc.Issue(context.Background(), userID)
	require.NoError(t, err)
	secondCred, _, err := svc.Issue(context.Background(), userID)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), firstToken.ID))

	_, err = svc.Authenticate(context.Background(), firstCred)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// Revoking one token leaves the user's other tokens valid.
	_, err = svc.Authenticate(context.Background(), secondCred)
	assert.NoError(t, err)

	// Revoking an already revoked token is not an error.
	assert.NoError(t, svc.Revoke(context.Background(), firstToken.ID))
}

func TestHashCredentialDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, auth.HashCredential("abc"), auth.HashCredential("abc"))
	assert.NotEqual(t, auth.HashCredential("abc"), auth.HashCredential("abd"))
	assert.Len(t, auth.HashCredential("abc"), 64)
}
