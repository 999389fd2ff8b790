package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTokenStore implements store.TokenStore for testing
type MockTokenStore struct {
	// Function fields for customizable behavior
	CreateFn    func(ctx context.Context, token *domain.AccessToken) error
	GetByHashFn func(ctx context.Context, tokenHash string) (*domain.AccessToken, error)
	DeleteFn    func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation, keyed by token hash
	mu     sync.Mutex
	Tokens map[string]*domain.AccessToken
}

// NewMockTokenStore creates a new mock store with initialized defaults
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{
		Tokens: make(map[string]*domain.AccessToken),
	}
}

// Create implements the TokenStore interface
func (m *MockTokenStore) Create(ctx context.Context, token *domain.AccessToken) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, token)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *token
	m.Tokens[token.TokenHash] = &copied
	return nil
}

// GetByHash implements the TokenStore interface
func (m *MockTokenStore) GetByHash(ctx context.Context, tokenHash string) (*domain.AccessToken, error) {
	if m.GetByHashFn != nil {
		return m.GetByHashFn(ctx, tokenHash)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	token, exists := m.Tokens[tokenHash]
	if !exists {
		return nil, store.ErrTokenNotFound
	}
	copied := *token
	return &copied, nil
}

// Delete implements the TokenStore interface
func (m *MockTokenStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for hash, token := range m.Tokens {
		if token.ID == id {
			delete(m.Tokens, hash)
			return nil
		}
	}
	return store.ErrTokenNotFound
}

// WithTx implements the TokenStore interface. The mock has no transaction
// support, so it returns itself.
func (m *MockTokenStore) WithTx(tx *sql.Tx) store.TokenStore {
	return m
}
