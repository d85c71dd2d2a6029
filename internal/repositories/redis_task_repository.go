package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	model "task-manager.com/task-manager/pkg/models"
)

// RedisTaskRepository keeps every task as a JSON document in one hash keyed
// by id, with ids drawn from a counter. Filtering and ordering happen in Go
// after a full read, which is fine for a single user's list.
type RedisTaskRepository struct {
	client   rueidis.Client
	tasksKey string
	seqKey   string
	now      func() time.Time
}

func NewRedisTaskRepository(client rueidis.Client, prefix string) *RedisTaskRepository {
	return &RedisTaskRepository{
		client:   client,
		tasksKey: prefix + ":tasks",
		seqKey:   prefix + ":tasks:seq",
		now:      now,
	}
}

// EnsureSchema initialises the id counter if it does not exist yet. Ids are
// never reused because the counter is never reset.
func (r *RedisTaskRepository) EnsureSchema(ctx context.Context) error {
	cmd := r.client.B().Setnx().Key(r.seqKey).Value("0").Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return storageError("initialise task counter", err)
	}
	return nil
}

func (r *RedisTaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	return r.load(ctx, "list tasks")
}

func (r *RedisTaskRepository) ListByStatus(ctx context.Context, status string) ([]model.Task, error) {
	tasks, err := r.load(ctx, "list tasks by status")
	if err != nil {
		return nil, err
	}
	return filterTasks(tasks, byStatus(status)), nil
}

func (r *RedisTaskRepository) ListByDescriptionKeyword(ctx context.Context, keyword string) ([]model.Task, error) {
	tasks, err := r.load(ctx, "list tasks by keyword")
	if err != nil {
		return nil, err
	}
	return filterTasks(tasks, byKeyword(keyword)), nil
}

func (r *RedisTaskRepository) ListOrderedByPriorityDesc(ctx context.Context) ([]model.Task, error) {
	tasks, err := r.load(ctx, "list tasks by priority")
	if err != nil {
		return nil, err
	}
	sortByPriorityDesc(tasks)
	return tasks, nil
}

func (r *RedisTaskRepository) ListOrderedByCreatedAtAsc(ctx context.Context) ([]model.Task, error) {
	tasks, err := r.load(ctx, "list tasks by creation date")
	if err != nil {
		return nil, err
	}
	sortByCreatedAtAsc(tasks)
	return tasks, nil
}

func (r *RedisTaskRepository) Create(ctx context.Context, task model.Task) (*model.Task, error) {
	stamp(&task, r.now())

	id, err := r.client.Do(ctx, r.client.B().Incr().Key(r.seqKey).Build()).AsInt64()
	if err != nil {
		return nil, storageError("allocate task id", err)
	}
	task.ID = uint(id)

	if err := r.save(ctx, task); err != nil {
		return nil, storageError("create task", err)
	}

	return &task, nil
}

func (r *RedisTaskRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	field := strconv.FormatUint(uint64(id), 10)

	raw, err := r.client.Do(ctx, r.client.B().Hget().Key(r.tasksKey).Field(field).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil
		}
		return storageError("update task status", err)
	}

	var task model.Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return storageError("update task status", fmt.Errorf("decode task %s: %w", field, err))
	}

	task.Status = status
	task.UpdatedAt = r.now()

	if err := r.save(ctx, task); err != nil {
		return storageError("update task status", err)
	}
	return nil
}

func (r *RedisTaskRepository) Delete(ctx context.Context, id uint) error {
	field := strconv.FormatUint(uint64(id), 10)
	if err := r.client.Do(ctx, r.client.B().Hdel().Key(r.tasksKey).Field(field).Build()).Error(); err != nil {
		return storageError("delete task", err)
	}
	return nil
}

func (r *RedisTaskRepository) Close() error {
	r.client.Close()
	return nil
}

func (r *RedisTaskRepository) save(ctx context.Context, task model.Task) error {
	b, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	field := strconv.FormatUint(uint64(task.ID), 10)
	cmd := r.client.B().Hset().Key(r.tasksKey).FieldValue().FieldValue(field, string(b)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisTaskRepository) load(ctx context.Context, op string) ([]model.Task, error) {
	entries, err := r.client.Do(ctx, r.client.B().Hgetall().Key(r.tasksKey).Build()).AsStrMap()
	if err != nil {
		return nil, storageError(op, err)
	}

	tasks := make([]model.Task, 0, len(entries))
	for field, raw := range entries {
		var task model.Task
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			return nil, storageError(op, fmt.Errorf("decode task %s: %w", field, err))
		}
		tasks = append(tasks, task)
	}

	sortByID(tasks)
	return tasks, nil
}
