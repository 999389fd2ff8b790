package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Access token validation errors
var (
	// ErrTokenIDEmpty is returned when a token ID is empty or nil.
	ErrTokenIDEmpty = errors.New("token ID cannot be empty")

	// ErrTokenUserIDEmpty is returned when a token's user ID is empty or nil.
	ErrTokenUserIDEmpty = errors.New("token user ID cannot be empty")

	// ErrTokenHashEmpty is returned when a token's hash is empty.
	ErrTokenHashEmpty = errors.New("token hash cannot be empty")
)

// AccessToken is the server-side record of one opaque bearer credential.
// Each token is bound to exactly one user and is revoked individually;
// logging out revokes only the token presented on that request.
//
// Only a SHA-256 hash of the credential is stored. The plaintext credential
// exists solely in the response that issued it.
type AccessToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	CreatedAt time.Time
	ExpiresAt *time.Time // nil means the token never expires
}

// NewAccessToken creates a new AccessToken bound to the given user.
// Returns an error if validation fails.
func NewAccessToken(userID uuid.UUID, tokenHash string, expiresAt *time.Time) (*AccessToken, error) {
	token := &AccessToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}

	if err := token.Validate(); err != nil {
		return nil, err
	}

	return token, nil
}

// Validate checks if the AccessToken has valid data.
func (t *AccessToken) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTokenIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTokenUserIDEmpty
	}

	if t.TokenHash == "" {
		return ErrTokenHashEmpty
	}

	return nil
}

// IsExpired reports whether the token has expired as of now.
// Tokens without an expiry never expire.
func (t *AccessToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}
