package api

import "time"

// CreateTaskRequest is the HTTP request for adding a task.
type CreateTaskRequest struct {
	Title string `json:"title"`
}

// SetFilterRequest is the HTTP request for changing the default filter.
type SetFilterRequest struct {
	Filter string `json:"filter"`
}

// TaskResponse is the HTTP response for a single task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ListTasksResponse is the HTTP response for listing tasks.
type ListTasksResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Total  int            `json:"total"`
	Filter string         `json:"filter"`
}

// FilterResponse is the HTTP response for the default filter.
type FilterResponse struct {
	Filter string `json:"filter"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
