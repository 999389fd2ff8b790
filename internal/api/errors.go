package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// Not-found covers both "doesn't exist" and "exists but not owned by the
// caller"; the store layer already collapsed the two, so no 403 exists here.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// Not found errors (uniformly, including not-owned)
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Validation-class errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, store.ErrEmailExists),
		isDomainValidationError(err):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Unauthenticated"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "The provided credentials are incorrect"

	case errors.Is(err, store.ErrEmailExists):
		return "The email has already been taken"

	case isDomainValidationError(err):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// isDomainValidationError reports whether the error is one of the domain
// entity validation errors, all of which map to a 422.
func isDomainValidationError(err error) bool {
	validationErrs := []error{
		domain.ErrValidation,
		domain.ErrTaskTitleEmpty,
		domain.ErrTaskTitleTooLong,
		domain.ErrTaskDescriptionTooLong,
		domain.ErrInvalidTaskStatus,
		domain.ErrEmptyName,
		domain.ErrNameTooShort,
		domain.ErrNameTooLong,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmailTooLong,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
	}
	for _, target := range validationErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ValidationFields converts a validator error into field-keyed messages for
// a 422 response. Unknown error shapes produce a single generic entry.
func ValidationFields(err error) map[string][]string {
	fields := make(map[string][]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fields["body"] = []string{"Validation failed"}
		return fields
	}

	for _, fieldErr := range validationErrs {
		field := fieldErr.Field()
		fields[field] = append(fields[field], validationMessage(field, fieldErr))
	}

	return fields
}

// validationMessage maps a validator tag to a client-facing message.
func validationMessage(field string, fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "eqfield":
		return fmt.Sprintf("The %s field confirmation does not match.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
