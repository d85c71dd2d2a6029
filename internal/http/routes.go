package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-manager.com/task-manager/internal/http/middlewares"
)

// Register mounts the tasks resource under /<resource>.
func Register(e *echo.Echo, h *Handler, resource string, rateLimitPerMinute int) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	g := e.Group("/" + resource)
	g.PUT("/schema", h.EnsureSchema)
	g.GET("", h.ListTasks)
	g.POST("", h.CreateTask)
	g.PATCH("/:id", h.UpdateStatus)
	g.DELETE("/:id", h.DeleteTask)
}
