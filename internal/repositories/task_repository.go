package repository

import (
	"context"
	"fmt"
	"time"

	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/pkg/models"
)

// TaskRepository is the storage contract shared by every backend.
//
// Reads never fail on an empty store, they return an empty slice. Keyword
// search is a case-insensitive substring match on every backend; status
// filtering is an exact, case-sensitive comparison. UpdateStatus and Delete
// are no-ops for unknown ids.
type TaskRepository interface {
	EnsureSchema(ctx context.Context) error
	ListAll(ctx context.Context) ([]model.Task, error)
	ListByStatus(ctx context.Context, status string) ([]model.Task, error)
	ListByDescriptionKeyword(ctx context.Context, keyword string) ([]model.Task, error)
	ListOrderedByPriorityDesc(ctx context.Context) ([]model.Task, error)
	ListOrderedByCreatedAtAsc(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	Close() error
}

// Timestamps are stored with second precision, the finest every backend keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// stamp fills the creation timestamps the caller left unset and brings both
// to UTC seconds. SQLite compares stored times as text, so mixed offsets
// would break ordering by created_at.
func stamp(task *model.Task, at time.Time) {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = at
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}
	task.CreatedAt = task.CreatedAt.UTC().Truncate(time.Second)
	task.UpdatedAt = task.UpdatedAt.UTC().Truncate(time.Second)
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStorageUnavailable, op, err)
}
