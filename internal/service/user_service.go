package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// AuthResult bundles the outcome of a successful register or login: the
// account and a freshly issued plaintext credential.
type AuthResult struct {
	User  *domain.User
	Token string
}

// UserService provides registration, authentication and account lookup.
type UserService interface {
	// Register creates a new user with a hashed password and issues a first
	// access token. Returns store.ErrEmailExists if the email is taken and
	// domain validation errors for invalid fields.
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)

	// Login verifies email+password and issues a new access token.
	// Returns ErrInvalidCredentials when no user matches or the password
	// check fails, without distinguishing the two.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Logout revokes exactly the one token identified by tokenID. Other
	// tokens issued to the same user stay valid.
	Logout(ctx context.Context, tokenID uuid.UUID) error

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	users    store.UserStore
	tokens   auth.TokenService
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tx       store.TxRunner
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	tokens auth.TokenService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tx store.TxRunner,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		verifier: verifier,
		tx:       tx,
		logger:   logger.With("component", "user_service"),
	}
}

// Ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register
func (s *UserServiceImpl) Register(
	ctx context.Context,
	name, email, password string,
) (*AuthResult, error) {
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = "" // plaintext is no longer needed

	err = s.tx.Run(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStoreWithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email")
			return nil, err
		}
		s.logger.Error("failed to save user to database",
			"error", err,
			"user_id", user.ID)
		return nil, err
	}

	credential, _, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID)

	return &AuthResult{User: user, Token: credential}, nil
}

// Login implements UserService.Login
func (s *UserServiceImpl) Login(
	ctx context.Context,
	email, password string,
) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user by email", "error", err)
		return nil, err
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	credential, _, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	s.logger.Debug("user logged in",
		"user_id", user.ID)

	return &AuthResult{User: user, Token: credential}, nil
}

// Logout implements UserService.Logout
func (s *UserServiceImpl) Logout(ctx context.Context, tokenID uuid.UUID) error {
	return s.tokens.Revoke(ctx, tokenID)
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}
	return user, nil
}

// userStoreWithTx binds the user store to a transaction when one is present.
// The nil check lets tests run the service on in-memory stores without a
// database transaction.
func (s *UserServiceImpl) userStoreWithTx(tx *sql.Tx) store.UserStore {
	if tx == nil {
		return s.users
	}
	return s.users.WithTx(tx)
}
