package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/tasklist/domain/task"
	"github.com/example/tasklist/events"
	"github.com/go-monolith/mono"
)

// addTask handles the add-task service request.
func (m *TaskModule) addTask(_ context.Context, req AddTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	m.mu.Lock()
	id := m.list.Add(req.Title)
	added, err := m.list.Get(id)
	m.mu.Unlock()
	if err != nil {
		return TaskResponse{}, fmt.Errorf("failed to read added task: %w", err)
	}

	m.logger.Info("Task added", "task_id", added.ID)

	if m.eventBus != nil {
		event := events.TaskAddedEvent{
			TaskID:    added.ID,
			Title:     added.Title,
			CreatedAt: added.CreatedAt,
		}
		if err := events.TaskAddedV1.Publish(m.eventBus, event, nil); err != nil {
			// Event publishing is best-effort; log but don't fail the operation
			m.logger.Warn("Failed to publish TaskAdded event", "task_id", added.ID, "error", err)
		}
	}

	return toTaskResponse(added), nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.list.Get(req.TaskID)
	if err != nil {
		return TaskResponse{Error: errorCode(err)}, nil
	}
	return toTaskResponse(t), nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filter := m.list.DefaultFilter()
	if req.Filter != "" {
		parsed, err := domain.ParseFilter(req.Filter)
		if err != nil {
			return ListTasksResponse{Error: errorCode(err)}, nil
		}
		filter = parsed
	}

	tasks := m.list.Filter(filter)
	response := ListTasksResponse{
		Tasks:  make([]TaskResponse, 0, len(tasks)),
		Total:  len(tasks),
		Filter: filter.String(),
	}
	for _, t := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(t))
	}
	return response, nil
}

// completeTask handles the complete-task service request.
func (m *TaskModule) completeTask(_ context.Context, req TransitionRequest, _ *mono.Msg) (TaskResponse, error) {
	before, after, _, err := m.transition(req.TaskID, m.list.MarkComplete)
	if err != nil {
		return TaskResponse{Error: errorCode(err)}, nil
	}

	if before.State != after.State {
		m.logger.Info("Task completed", "task_id", after.ID)
		if m.eventBus != nil && after.CompletedAt != nil {
			event := events.TaskCompletedEvent{
				TaskID:      after.ID,
				Title:       after.Title,
				CompletedAt: *after.CompletedAt,
			}
			if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
				m.logger.Warn("Failed to publish TaskCompleted event", "task_id", after.ID, "error", err)
			}
		}
	}

	return toTaskResponse(after), nil
}

// reopenTask handles the reopen-task service request.
func (m *TaskModule) reopenTask(_ context.Context, req TransitionRequest, _ *mono.Msg) (TaskResponse, error) {
	before, after, at, err := m.transition(req.TaskID, m.list.MarkActive)
	if err != nil {
		return TaskResponse{Error: errorCode(err)}, nil
	}

	if before.State != after.State {
		m.logger.Info("Task reopened", "task_id", after.ID)
		if m.eventBus != nil {
			event := events.TaskReopenedEvent{
				TaskID:     after.ID,
				Title:      after.Title,
				ReopenedAt: at,
			}
			if err := events.TaskReopenedV1.Publish(m.eventBus, event, nil); err != nil {
				m.logger.Warn("Failed to publish TaskReopened event", "task_id", after.ID, "error", err)
			}
		}
	}

	return toTaskResponse(after), nil
}

// setDefaultFilter handles the set-default-filter service request.
func (m *TaskModule) setDefaultFilter(_ context.Context, req SetDefaultFilterRequest, _ *mono.Msg) (SetDefaultFilterResponse, error) {
	filter, err := domain.ParseFilter(req.Filter)
	if err != nil {
		return SetDefaultFilterResponse{Error: errorCode(err)}, nil
	}

	m.mu.Lock()
	err = m.list.SetDefaultFilter(filter)
	m.mu.Unlock()
	if err != nil {
		return SetDefaultFilterResponse{Error: errorCode(err)}, nil
	}

	m.logger.Info("Default filter changed", "filter", filter.String())
	return SetDefaultFilterResponse{Filter: filter.String()}, nil
}

// transition applies op to the task under the write lock and returns the
// task as it was before and after, plus the list clock's time of the change.
func (m *TaskModule) transition(taskID string, op func(string) error) (domain.Task, domain.Task, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before, err := m.list.Get(taskID)
	if err != nil {
		return domain.Task{}, domain.Task{}, time.Time{}, err
	}
	if err := op(taskID); err != nil {
		return domain.Task{}, domain.Task{}, time.Time{}, err
	}
	at := m.list.Now()
	after, err := m.list.Get(taskID)
	if err != nil {
		return domain.Task{}, domain.Task{}, time.Time{}, err
	}
	return before, after, at, nil
}

// errorCode maps a domain error to the code sent in the reply.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ErrorNotFound
	case errors.Is(err, domain.ErrInvalidFilter):
		return ErrorInvalidFilter
	default:
		return err.Error()
	}
}

// replyError restores the domain error for a reply error code.
func replyError(code string) error {
	switch code {
	case "":
		return nil
	case ErrorNotFound:
		return domain.ErrNotFound
	case ErrorInvalidFilter:
		return domain.ErrInvalidFilter
	default:
		return errors.New(code)
	}
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		State:       t.State.String(),
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}
