// Package service contains the application's use-case layer: registration,
// login/logout, and the task lifecycle engine.
package service

import "errors"

// Service-level errors.
var (
	// ErrInvalidCredentials is returned by Login when the email is unknown
	// or the password does not match. The two cases are deliberately not
	// distinguishable, so login responses cannot be used to probe which
	// emails are registered.
	ErrInvalidCredentials = errors.New("the provided credentials are incorrect")
)
