package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every read and write is parameterized by the owning user's ID rather than
// relying on any ambient "current user" state. A lookup for a task that
// exists but belongs to a different owner returns ErrTaskNotFound, exactly
// as if the task did not exist, so task IDs cannot be enumerated across
// accounts.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetForOwner retrieves the task with the given ID if it is owned by
	// ownerID. Returns ErrTaskNotFound if no such task exists for that owner.
	GetForOwner(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// GetForOwnerLocked behaves like GetForOwner but acquires a row lock on
	// the task for the duration of the surrounding transaction. It must only
	// be called on a store bound to a transaction via WithTx.
	GetForOwnerLocked(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// ListForOwner returns all tasks owned by ownerID, newest-created first.
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Update persists the full state of a task. The write is scoped by the
	// task's ID and UserID together; it returns ErrTaskNotFound if the task
	// does not exist for that owner.
	Update(ctx context.Context, task *domain.Task) error

	// DeleteForOwner permanently removes the task with the given ID if it is
	// owned by ownerID. Returns ErrTaskNotFound if no such task exists for
	// that owner. This operation cannot be undone.
	DeleteForOwner(ctx context.Context, ownerID, taskID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
