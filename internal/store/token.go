package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TokenStore defines the interface for access token persistence.
// Tokens are looked up by the hash of the presented credential; the
// plaintext credential is never stored.
type TokenStore interface {
	// Create saves a new access token record to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, token *domain.AccessToken) error

	// GetByHash retrieves a token record by the hash of the presented
	// credential. Returns ErrTokenNotFound if no matching token exists.
	GetByHash(ctx context.Context, tokenHash string) (*domain.AccessToken, error)

	// Delete revokes a single token by its ID. Other tokens issued to the
	// same user remain valid.
	// Returns ErrTokenNotFound if the token does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TokenStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TokenStore
}
