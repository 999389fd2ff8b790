package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskTitleTooLong is returned when a task's title exceeds TitleMaxLen.
	ErrTaskTitleTooLong = errors.New("task title cannot exceed 255 characters")

	// ErrTaskDescriptionTooLong is returned when a task's description exceeds DescriptionMaxLen.
	ErrTaskDescriptionTooLong = errors.New("task description cannot exceed 1000 characters")

	// ErrInvalidTaskStatus is returned when a status value is not one of the
	// three recognized states.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrCompletedAtMismatch is returned when a task's completed_at timestamp
	// disagrees with its status. ApplyStatusTransition is the only code path
	// that changes status, so this indicates a programming error.
	ErrCompletedAtMismatch = errors.New("completed_at must be set exactly when status is completed")
)

// Field length limits for tasks, counted in characters, not bytes, matching
// the request-layer validation.
const (
	TitleMaxLen       = 255
	DescriptionMaxLen = 1000
)

// TaskStatus is the closed set of task lifecycle states.
type TaskStatus string

const (
	// TaskStatusPending means the task is created but not yet started.
	TaskStatusPending TaskStatus = "pending"

	// TaskStatusInProgress means the task is actively being worked on.
	TaskStatusInProgress TaskStatus = "in_progress"

	// TaskStatusCompleted means the task is finished. A completed task always
	// carries a completion timestamp.
	TaskStatusCompleted TaskStatus = "completed"
)

// ParseTaskStatus converts a raw string into a TaskStatus.
// Returns ErrInvalidTaskStatus for any value outside the closed set.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return TaskStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
}

// IsValid reports whether the status is one of the three recognized states.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsCompleted reports whether the status is the completed state.
func (s TaskStatus) IsCompleted() bool {
	return s == TaskStatusCompleted
}

// Task represents a single item on a user's task list. A task belongs to
// exactly one user for its entire life; ownership never transfers.
//
// Invariant: CompletedAt is non-nil exactly when Status is completed. The
// invariant is maintained by ApplyStatusTransition and checked by Validate.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user. The task starts from
// the "not completed" baseline and the requested status is applied through
// ApplyStatusTransition, so creating a task directly in the completed state
// stamps CompletedAt with the creation time.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string, description *string, status TaskStatus) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.ApplyStatusTransition(status, now)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// ApplyStatusTransition sets the task's status and derives CompletedAt from
// the transition between the previous stored status and the new one:
//
//   - entering completed sets CompletedAt to now
//   - leaving completed clears CompletedAt
//   - otherwise CompletedAt is unchanged
//
// This is the single code path for status changes; every mutation that
// touches status must go through it so the completed/CompletedAt invariant
// holds on all paths.
func (t *Task) ApplyStatusTransition(next TaskStatus, now time.Time) {
	prev := t.Status
	t.Status = next

	switch {
	case next.IsCompleted() && !prev.IsCompleted():
		completedAt := now
		t.CompletedAt = &completedAt
	case !next.IsCompleted() && prev.IsCompleted():
		t.CompletedAt = nil
	}
}

// Validate checks if the Task has valid data, including the
// status/CompletedAt invariant.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}
	if utf8.RuneCountInString(t.Title) > TitleMaxLen {
		return ErrTaskTitleTooLong
	}

	if t.Description != nil && utf8.RuneCountInString(*t.Description) > DescriptionMaxLen {
		return ErrTaskDescriptionTooLong
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskStatus, t.Status)
	}

	if (t.CompletedAt != nil) != t.Status.IsCompleted() {
		return ErrCompletedAtMismatch
	}

	return nil
}
