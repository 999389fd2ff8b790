package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// PostgresTokenStore implements the store.TokenStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTokenStore creates a new PostgreSQL implementation of the TokenStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTokenStore(db store.DBTX, logger *slog.Logger) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

// Ensure PostgresTokenStore implements store.TokenStore interface
var _ store.TokenStore = (*PostgresTokenStore)(nil)

// Create implements store.TokenStore.Create
func (s *PostgresTokenStore) Create(ctx context.Context, token *domain.AccessToken) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := token.Validate(); err != nil {
		log.Warn("token validation failed during create",
			slog.String("error", err.Error()),
			slog.String("token_id", token.ID.String()))
		return err
	}

	query := `
		INSERT INTO access_tokens (id, user_id, token_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.CreatedAt,
		token.ExpiresAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, token.UserID)
		}
		log.Error("failed to create access token",
			slog.String("error", err.Error()),
			slog.String("token_id", token.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByHash implements store.TokenStore.GetByHash
func (s *PostgresTokenStore) GetByHash(
	ctx context.Context,
	tokenHash string,
) (*domain.AccessToken, error) {
	query := `
		SELECT id, user_id, token_hash, created_at, expires_at
		FROM access_tokens
		WHERE token_hash = $1
	`
	var token domain.AccessToken
	err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.CreatedAt,
		&token.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrTokenNotFound
		}
		return nil, MapError(err)
	}

	return &token, nil
}

// Delete implements store.TokenStore.Delete
// Only the single token row is removed; other tokens for the same user
// are untouched.
func (s *PostgresTokenStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM access_tokens WHERE id = $1`,
		id,
	)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTokenNotFound)
}

// WithTx implements store.TokenStore.WithTx
func (s *PostgresTokenStore) WithTx(tx *sql.Tx) store.TokenStore {
	return &PostgresTokenStore{
		db:     tx,
		logger: s.logger,
	}
}
