package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	dto "task-manager.com/task-manager/internal/data_models"
	model "task-manager.com/task-manager/pkg/models"
)

// HTTPTaskRepository talks to a tasks resource served by the serve command.
// Keyword matching is done by the server's repository, so it follows the same
// case-insensitive rule.
type HTTPTaskRepository struct {
	client   *http.Client
	baseURL  string
	user     string
	password string
	now      func() time.Time
}

func NewHTTPTaskRepository(host, resource, user, password string, timeout time.Duration) *HTTPTaskRepository {
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}

	return &HTTPTaskRepository{
		client:   &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(host, "/") + "/" + url.PathEscape(resource),
		user:     user,
		password: password,
		now:      now,
	}
}

func (r *HTTPTaskRepository) EnsureSchema(ctx context.Context) error {
	return r.do(ctx, "ensure schema", http.MethodPut, "/schema", nil, nil, nil)
}

func (r *HTTPTaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	return r.list(ctx, "list tasks", nil)
}

func (r *HTTPTaskRepository) ListByStatus(ctx context.Context, status string) ([]model.Task, error) {
	return r.list(ctx, "list tasks by status", url.Values{"status": {status}})
}

func (r *HTTPTaskRepository) ListByDescriptionKeyword(ctx context.Context, keyword string) ([]model.Task, error) {
	return r.list(ctx, "list tasks by keyword", url.Values{"keyword": {keyword}})
}

func (r *HTTPTaskRepository) ListOrderedByPriorityDesc(ctx context.Context) ([]model.Task, error) {
	return r.list(ctx, "list tasks by priority", url.Values{"order": {dto.OrderPriority}})
}

func (r *HTTPTaskRepository) ListOrderedByCreatedAtAsc(ctx context.Context) ([]model.Task, error) {
	return r.list(ctx, "list tasks by creation date", url.Values{"order": {dto.OrderCreatedAt}})
}

func (r *HTTPTaskRepository) Create(ctx context.Context, task model.Task) (*model.Task, error) {
	stamp(&task, r.now())

	req := dto.CreateTaskRequest{
		Label:       task.Label,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	var created model.Task
	if err := r.do(ctx, "create task", http.MethodPost, "", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *HTTPTaskRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.do(ctx, "update task status", http.MethodPatch, taskPath(id), nil, dto.UpdateStatusRequest{Status: status}, nil)
}

func (r *HTTPTaskRepository) Delete(ctx context.Context, id uint) error {
	return r.do(ctx, "delete task", http.MethodDelete, taskPath(id), nil, nil, nil)
}

func (r *HTTPTaskRepository) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

func (r *HTTPTaskRepository) list(ctx context.Context, op string, query url.Values) ([]model.Task, error) {
	var resp dto.TaskListResponse
	if err := r.do(ctx, op, http.MethodGet, "", query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		return []model.Task{}, nil
	}
	return resp.Tasks, nil
}

func (r *HTTPTaskRepository) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	target := r.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: json marshal: %w", op, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return storageError(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(r.user, r.password)

	resp, err := r.client.Do(req)
	if err != nil {
		return storageError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return storageError(op, fmt.Errorf("%s %s: status %d: %s", method, target, resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return storageError(op, fmt.Errorf("json decode: %w", err))
	}
	return nil
}

func taskPath(id uint) string {
	return "/" + strconv.FormatUint(uint64(id), 10)
}
