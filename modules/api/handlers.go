package api

import (
	"errors"

	domain "github.com/example/tasklist/domain/task"
	"github.com/example/tasklist/modules/task"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	tasks := app.Group("/api/v1/tasks")
	tasks.Post("/", m.createTask)
	tasks.Get("/", m.listTasks)
	tasks.Put("/filter", m.setFilter)
	tasks.Get("/:id", m.getTask)
	tasks.Post("/:id/complete", m.completeTask)
	tasks.Post("/:id/reopen", m.reopenTask)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"addr":   m.addr,
		},
	})
}

// createTask handles POST /api/v1/tasks.
// Empty titles are accepted.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	resp, err := m.taskAdapter.AddTask(c.Context(), req.Title)
	if err != nil {
		return m.serviceError(c, "create_failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(resp))
}

// listTasks handles GET /api/v1/tasks?filter=active|complete|all.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	filter := c.Query("filter", "")
	if filter != "" {
		if _, err := domain.ParseFilter(filter); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
			})
		}
	}

	resp, err := m.taskAdapter.ListTasks(c.Context(), filter)
	if err != nil {
		return m.serviceError(c, "list_failed", err)
	}

	tasks := make([]TaskResponse, 0, len(resp.Tasks))
	for i := range resp.Tasks {
		tasks = append(tasks, toTaskResponse(&resp.Tasks[i]))
	}

	return c.JSON(ListTasksResponse{
		Tasks:  tasks,
		Total:  resp.Total,
		Filter: resp.Filter,
	})
}

// getTask handles GET /api/v1/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	resp, err := m.taskAdapter.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return m.serviceError(c, "get_failed", err)
	}
	return c.JSON(toTaskResponse(resp))
}

// completeTask handles POST /api/v1/tasks/:id/complete.
func (m *APIModule) completeTask(c *fiber.Ctx) error {
	resp, err := m.taskAdapter.CompleteTask(c.Context(), c.Params("id"))
	if err != nil {
		return m.serviceError(c, "complete_failed", err)
	}
	return c.JSON(toTaskResponse(resp))
}

// reopenTask handles POST /api/v1/tasks/:id/reopen.
func (m *APIModule) reopenTask(c *fiber.Ctx) error {
	resp, err := m.taskAdapter.ReopenTask(c.Context(), c.Params("id"))
	if err != nil {
		return m.serviceError(c, "reopen_failed", err)
	}
	return c.JSON(toTaskResponse(resp))
}

// setFilter handles PUT /api/v1/tasks/filter.
func (m *APIModule) setFilter(c *fiber.Ctx) error {
	var req SetFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if _, err := domain.ParseFilter(req.Filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	resp, err := m.taskAdapter.SetDefaultFilter(c.Context(), req.Filter)
	if err != nil {
		return m.serviceError(c, "set_filter_failed", err)
	}
	return c.JSON(FilterResponse{Filter: resp.Filter})
}

// serviceError maps a task service error to an HTTP response.
func (m *APIModule) serviceError(c *fiber.Ctx, code string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case errors.Is(err, domain.ErrInvalidFilter):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	default:
		m.logger.Error("Task service call failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   code,
			Message: err.Error(),
		})
	}
}

func toTaskResponse(t *task.TaskResponse) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		State:       t.State,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}
