package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// tokenBytes is the entropy of an issued credential (64 hex characters).
const tokenBytes = 32

// TokenService issues and resolves opaque bearer credentials.
//
// A credential is a random hex string handed to the client once; the server
// keeps only its SHA-256 hash. Presenting the credential on a request
// resolves it back to the stored AccessToken and hence to a user. Each
// credential is revocable on its own, so logging out one device leaves a
// user's other sessions intact.
type TokenService interface {
	// Issue creates a new credential for the given user. It returns the
	// plaintext credential (shown to the client exactly once) and the stored
	// token record.
	Issue(ctx context.Context, userID uuid.UUID) (string, *domain.AccessToken, error)

	// Authenticate resolves a presented credential to its token record.
	// Returns ErrInvalidToken if the credential matches no issued token and
	// ErrExpiredToken if the matching token has expired.
	Authenticate(ctx context.Context, credential string) (*domain.AccessToken, error)

	// Revoke deletes the single token with the given ID.
	Revoke(ctx context.Context, tokenID uuid.UUID) error
}

// TokenServiceImpl implements TokenService backed by a TokenStore.
type TokenServiceImpl struct {
	tokens store.TokenStore
	ttl    time.Duration // zero means issued tokens never expire
	logger *slog.Logger
}

// NewTokenService creates a new TokenService. A ttl of zero disables expiry.
func NewTokenService(tokens store.TokenStore, ttl time.Duration, logger *slog.Logger) *TokenServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenServiceImpl{
		tokens: tokens,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "token_service")),
	}
}

// Ensure TokenServiceImpl implements TokenService
var _ TokenService = (*TokenServiceImpl)(nil)

// Issue implements TokenService.Issue
func (s *TokenServiceImpl) Issue(
	ctx context.Context,
	userID uuid.UUID,
) (string, *domain.AccessToken, error) {
	credential, err := newCredential()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate credential: %w", err)
	}

	var expiresAt *time.Time
	if s.ttl > 0 {
		exp := time.Now().UTC().Add(s.ttl)
		expiresAt = &exp
	}

	token, err := domain.NewAccessToken(userID, HashCredential(credential), expiresAt)
	if err != nil {
		return "", nil, err
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		s.logger.Error("failed to store access token",
			"error", err,
			"user_id", userID)
		return "", nil, err
	}

	return credential, token, nil
}

// Authenticate implements TokenService.Authenticate
func (s *TokenServiceImpl) Authenticate(
	ctx context.Context,
	credential string,
) (*domain.AccessToken, error) {
	if credential == "" {
		return nil, ErrInvalidToken
	}

	token, err := s.tokens.GetByHash(ctx, HashCredential(credential))
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if token.IsExpired(time.Now().UTC()) {
		return nil, ErrExpiredToken
	}

	return token, nil
}

// Revoke implements TokenService.Revoke
func (s *TokenServiceImpl) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	if err := s.tokens.Delete(ctx, tokenID); err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			// Already revoked; revocation is idempotent.
			return nil
		}
		return err
	}
	return nil
}

// HashCredential returns the hex-encoded SHA-256 hash of a credential.
// This is the value stored and indexed server-side.
func HashCredential(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}

func newCredential() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
