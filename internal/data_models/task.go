package dto

import (
	"time"

	model "task-manager.com/task-manager/pkg/models"
)

// CreateTaskRequest carries the caller's timestamps so they are assigned
// where the task is created, not by the server.
type CreateTaskRequest struct {
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r CreateTaskRequest) Task() model.Task {
	return model.Task{
		Label:       r.Label,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type TaskListResponse struct {
	Count int          `json:"count"`
	Tasks []model.Task `json:"tasks"`
}

// Values of the order query parameter on the list endpoint.
const (
	OrderPriority  = "priority"
	OrderCreatedAt = "created_at"
)
