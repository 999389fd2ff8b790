package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskUpdate describes a partial update to a task. Only fields that were
// present in the request are applied:
//
//   - Title, when non-nil, replaces the title.
//   - Description replaces the stored description when DescriptionSet is
//     true; a nil Description with DescriptionSet clears it. Explicit null
//     and a missing field are different things.
//   - Status, when non-nil, is applied through the task's status transition,
//     which keeps CompletedAt in sync.
type TaskUpdate struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *domain.TaskStatus
}

// TaskService is the task lifecycle engine. Every operation takes the owner
// resolved from the request's credential and is scoped to it: a task that
// exists but belongs to someone else is reported as store.ErrTaskNotFound,
// identical to a task that does not exist at all.
type TaskService interface {
	// List returns all tasks owned by ownerID, newest-created first.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Create makes a new task owned by ownerID. Creating directly in the
	// completed state stamps the completion time.
	Create(
		ctx context.Context,
		ownerID uuid.UUID,
		title string,
		description *string,
		status domain.TaskStatus,
	) (*domain.Task, error)

	// Get returns the task with the given ID if owned by ownerID.
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// Update applies a partial update to the task with the given ID if owned
	// by ownerID. The read-modify-write runs in a single transaction with a
	// row lock, so concurrent updates to the same task serialize.
	Update(ctx context.Context, ownerID, taskID uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// Delete permanently removes the task with the given ID if owned by
	// ownerID. Irreversible.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	tasks  store.TaskStore
	tx     store.TxRunner
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore, tx store.TxRunner, logger *slog.Logger) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		tasks:  tasks,
		tx:     tx,
		logger: logger.With("component", "task_service"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ensure TaskServiceImpl implements TaskService
var _ TaskService = (*TaskServiceImpl)(nil)

// List implements TaskService.List
func (s *TaskServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListForOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"owner_id", ownerID)
		return nil, err
	}
	return tasks, nil
}

// Create implements TaskService.Create
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	title string,
	description *string,
	status domain.TaskStatus,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, title, description, status)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"owner_id", ownerID)
		return nil, err
	}

	s.logger.Debug("task created",
		"task_id", task.ID,
		"owner_id", ownerID,
		"status", task.Status)

	return task, nil
}

// Get implements TaskService.Get
func (s *TaskServiceImpl) Get(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
) (*domain.Task, error) {
	return s.tasks.GetForOwner(ctx, ownerID, taskID)
}

// Update implements TaskService.Update
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	var updated *domain.Task

	err := s.tx.Run(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStoreWithTx(tx)

		task, err := tasks.GetForOwnerLocked(ctx, ownerID, taskID)
		if err != nil {
			return err
		}

		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.DescriptionSet {
			task.Description = update.Description
		}
		if update.Status != nil {
			// The single code path for status changes; CompletedAt follows.
			task.ApplyStatusTransition(*update.Status, s.now())
		}
		task.UpdatedAt = s.now()

		if err := task.Validate(); err != nil {
			return err
		}

		if err := tasks.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task updated",
		"task_id", taskID,
		"owner_id", ownerID)

	return updated, nil
}

// Delete implements TaskService.Delete
func (s *TaskServiceImpl) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.tasks.DeleteForOwner(ctx, ownerID, taskID); err != nil {
		return err
	}

	s.logger.Debug("task deleted",
		"task_id", taskID,
		"owner_id", ownerID)

	return nil
}

// taskStoreWithTx binds the task store to a transaction when one is present.
// The nil check lets tests run the service on in-memory stores without a
// database transaction.
func (s *TaskServiceImpl) taskStoreWithTx(tx *sql.Tx) store.TaskStore {
	if tx == nil {
		return s.tasks
	}
	return s.tasks.WithTx(tx)
}
