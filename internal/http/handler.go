package http

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
	"task-manager.com/task-manager/internal/http/validators"
	repository "task-manager.com/task-manager/internal/repositories"
	model "task-manager.com/task-manager/pkg/models"
)

// Handler exposes a TaskRepository as an HTTP resource.
type Handler struct {
	repo repository.TaskRepository
}

func NewHandler(repo repository.TaskRepository) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) EnsureSchema(c echo.Context) error {
	if err := h.repo.EnsureSchema(c.Request().Context()); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListTasks(c echo.Context) error {
	params := c.QueryParams()
	order := c.QueryParam("order")
	if err := validators.ValidateOrder(order); err != nil {
		return h.fail(c, err)
	}

	ctx := c.Request().Context()

	var (
		tasks []model.Task
		err   error
	)
	switch {
	case params.Has("status"):
		tasks, err = h.repo.ListByStatus(ctx, params.Get("status"))
	case params.Has("keyword"):
		tasks, err = h.repo.ListByDescriptionKeyword(ctx, params.Get("keyword"))
	case order == dto.OrderPriority:
		tasks, err = h.repo.ListOrderedByPriorityDesc(ctx)
	case order == dto.OrderCreatedAt:
		tasks, err = h.repo.ListOrderedByCreatedAtAsc(ctx)
	default:
		tasks, err = h.repo.ListAll(ctx)
	}
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, dto.TaskListResponse{
		Count: len(tasks),
		Tasks: tasks,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, apperrors.ErrInvalidPayload)
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return h.fail(c, err)
	}

	task, err := h.repo.Create(c.Request().Context(), req.Task())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, apperrors.ErrInvalidPayload)
	}
	if err := validators.ValidateUpdateStatusRequest(&req); err != nil {
		return h.fail(c, err)
	}

	if err := h.repo.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) fail(c echo.Context, err error) error {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		return echo.NewHTTPError(status, http.StatusText(status))
	}
	return echo.NewHTTPError(status, err.Error())
}
