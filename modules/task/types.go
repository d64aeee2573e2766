package task

import (
	"context"
	"time"
)

// Error codes carried in service replies. A handler that returns a Go error
// sends no reply, so expected failures travel in the payload instead.
const (
	ErrorNotFound      = "not_found"
	ErrorInvalidFilter = "invalid_filter"
)

// AddTaskRequest is the request for adding a task.
type AddTaskRequest struct {
	Title string `json:"title"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID string `json:"task_id"`
}

// ListTasksRequest is the request for listing tasks.
// An empty Filter selects the list's default filter.
type ListTasksRequest struct {
	Filter string `json:"filter,omitempty"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Total  int            `json:"total"`
	Filter string         `json:"filter"`
	Error  string         `json:"error,omitempty"`
}

// TransitionRequest is the request for completing or reopening a task.
type TransitionRequest struct {
	TaskID string `json:"task_id"`
}

// SetDefaultFilterRequest is the request for changing the default filter.
type SetDefaultFilterRequest struct {
	Filter string `json:"filter"`
}

// SetDefaultFilterResponse is the response for changing the default filter.
type SetDefaultFilterResponse struct {
	Filter string `json:"filter"`
	Error  string `json:"error,omitempty"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the task list.
type TaskPort interface {
	AddTask(ctx context.Context, title string) (*TaskResponse, error)
	GetTask(ctx context.Context, taskID string) (*TaskResponse, error)
	ListTasks(ctx context.Context, filter string) (*ListTasksResponse, error)
	CompleteTask(ctx context.Context, taskID string) (*TaskResponse, error)
	ReopenTask(ctx context.Context, taskID string) (*TaskResponse, error)
	SetDefaultFilter(ctx context.Context, filter string) (*SetDefaultFilterResponse, error)
}
