package mocks

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTxRunner implements store.TxRunner without a database. It invokes the
// function with a nil transaction; the in-memory mock stores return
// themselves from WithTx, so the nil transaction is never dereferenced.
type MockTxRunner struct {
	// RunFn overrides the default pass-through behavior when set.
	RunFn func(ctx context.Context, fn store.TxFn) error

	// RunErr, when set, is returned without invoking the function. Useful
	// for simulating transaction begin/commit failures.
	RunErr error
}

// NewMockTxRunner creates a pass-through transaction runner.
func NewMockTxRunner() *MockTxRunner {
	return &MockTxRunner{}
}

// Run implements the TxRunner interface
func (m *MockTxRunner) Run(ctx context.Context, fn store.TxFn) error {
	if m.RunFn != nil {
		return m.RunFn(ctx, fn)
	}
	if m.RunErr != nil {
		return m.RunErr
	}
	return fn(ctx, nil)
}
