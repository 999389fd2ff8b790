package api

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// The password must be confirmed by repeating it in password_confirmation.
type RegisterRequest struct {
	Name                 string `json:"name"                  validate:"required,min=2,max=255"`
	Email                string `json:"email"                 validate:"required,email,max=255"`
	Password             string `json:"password"              validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public shape of a user. Password material is never
// part of it.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// NewUserResponse builds the public shape from a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// AuthResponse defines the successful response for register and login.
// Token is the plaintext credential; it is shown exactly once.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// MessageResponse is a plain confirmation message body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskRequest defines the payload for creating a task.
// Status defaults to pending when omitted.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      string  `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
}

// UpdateTaskRequest defines the payload for partially updating a task.
// Absent fields leave the stored value unchanged; description distinguishes
// absent from explicit null, which clears it.
type UpdateTaskRequest struct {
	// omitempty skips an empty string, so the handler rejects a present
	// empty title itself.
	Title       *string    `json:"title"       validate:"omitempty,max=255"`
	Description NullString `json:"description"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
}

// NullString is a tri-state JSON string: absent, null, or a value.
// Set reports whether the field appeared in the request at all.
type NullString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field is present, which is what distinguishes absent from explicit null.
func (n *NullString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}
