package repository

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	model "task-manager.com/task-manager/pkg/models"
)

// SQLTaskRepository stores tasks in a relational table through gorm. It
// works with any dialect the configs package can open.
type SQLTaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSQLTaskRepository(db *gorm.DB) *SQLTaskRepository {
	return &SQLTaskRepository{db: db, now: now}
}

func (r *SQLTaskRepository) EnsureSchema(ctx context.Context) error {
	migrator := r.db.WithContext(ctx).Migrator()
	if migrator.HasTable(&model.Task{}) {
		return nil
	}

	if err := migrator.CreateTable(&model.Task{}); err != nil {
		return storageError("create tasks table", err)
	}

	log.Println("table 'tasks' successfully created")
	return nil
}

func (r *SQLTaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	return r.find(ctx, "list tasks", func(q *gorm.DB) *gorm.DB {
		return q.Order("id asc")
	})
}

// ListByStatus narrows in SQL and re-checks in Go, because MySQL's default
// collation compares case-insensitively.
func (r *SQLTaskRepository) ListByStatus(ctx context.Context, status string) ([]model.Task, error) {
	tasks, err := r.find(ctx, "list tasks by status", func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status).Order("id asc")
	})
	if err != nil {
		return nil, err
	}
	return filterTasks(tasks, byStatus(status)), nil
}

func (r *SQLTaskRepository) ListByDescriptionKeyword(ctx context.Context, keyword string) ([]model.Task, error) {
	return r.find(ctx, "list tasks by keyword", func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(description) LIKE ? ESCAPE '"+likeEscape+"'", likePattern(keyword)).
			Order("id asc")
	})
}

func (r *SQLTaskRepository) ListOrderedByPriorityDesc(ctx context.Context) ([]model.Task, error) {
	return r.find(ctx, "list tasks by priority", func(q *gorm.DB) *gorm.DB {
		return q.Order("priority desc").Order("id asc")
	})
}

func (r *SQLTaskRepository) ListOrderedByCreatedAtAsc(ctx context.Context) ([]model.Task, error) {
	return r.find(ctx, "list tasks by creation date", func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at asc").Order("id asc")
	})
}

func (r *SQLTaskRepository) Create(ctx context.Context, task model.Task) (*model.Task, error) {
	task.ID = 0
	stamp(&task, r.now())

	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, storageError("create task", err)
	}

	return &task, nil
}

func (r *SQLTaskRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": r.now(),
		})

	if res.Error != nil {
		return storageError("update task status", res.Error)
	}

	return nil
}

func (r *SQLTaskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, id).Error; err != nil {
		return storageError("delete task", err)
	}
	return nil
}

func (r *SQLTaskRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *SQLTaskRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := scope(r.db.WithContext(ctx)).Find(&tasks).Error; err != nil {
		return nil, storageError(op, err)
	}
	return tasks, nil
}
