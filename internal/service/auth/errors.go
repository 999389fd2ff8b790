package auth

import "errors"

// Authentication errors returned by the token service.
var (
	// ErrInvalidToken is returned when the presented credential does not
	// match any issued token (never issued, malformed, or revoked).
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when the presented credential matches a
	// token whose expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)
