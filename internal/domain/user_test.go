package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Test User", "test@example.com", "password123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Name != "Test User" {
		t.Errorf("Expected name %q, got %q", "Test User", user.Name)
	}
	if user.Email != "test@example.com" {
		t.Errorf("Expected email %q, got %q", "test@example.com", user.Email)
	}
	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "empty name",
			userName: "",
			email:    "test@example.com",
			password: "password123",
			wantErr:  ErrEmptyName,
		},
		{
			name:     "one character name",
			userName: "a",
			email:    "test@example.com",
			password: "password123",
			wantErr:  ErrNameTooShort,
		},
		{
			name:     "name over limit",
			userName: strings.Repeat("n", NameMaxLen+1),
			email:    "test@example.com",
			password: "password123",
			wantErr:  ErrNameTooLong,
		},
		{
			name:     "multibyte name at limit",
			userName: strings.Repeat("é", NameMaxLen),
			email:    "test@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "two multibyte characters is long enough",
			userName: "éé",
			email:    "test@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "empty email",
			userName: "Test User",
			email:    "",
			password: "password123",
			wantErr:  ErrEmptyEmail,
		},
		{
			name:     "email without domain dot",
			userName: "Test User",
			email:    "test@example",
			password: "password123",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "email over limit",
			userName: "Test User",
			email:    strings.Repeat("e", EmailMaxLen) + "@example.com",
			password: "password123",
			wantErr:  ErrEmailTooLong,
		},
		{
			name:     "password too short",
			userName: "Test User",
			email:    "test@example.com",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password over bcrypt limit",
			userName: "Test User",
			email:    "test@example.com",
			password: strings.Repeat("p", PasswordMaxLen+1),
			wantErr:  ErrPasswordTooLong,
		},
		{
			name:     "password at minimum",
			userName: "Test User",
			email:    "test@example.com",
			password: strings.Repeat("p", PasswordMinLen),
			wantErr:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.userName, tc.email, tc.password)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	// A user loaded from storage has no plaintext password, only the hash.
	user := User{
		ID:             uuid.New(),
		Name:           "Stored User",
		Email:          "stored@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error for stored user, got %v", err)
	}

	user.HashedPassword = ""
	if err := user.Validate(); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Expected ErrEmptyPassword, got %v", err)
	}
}
