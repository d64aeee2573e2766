package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

func (a *taskAdapter) AddTask(ctx context.Context, title string) (*TaskResponse, error) {
	req := AddTaskRequest{Title: title}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceAddTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceAddTask, err)
	}
	if err := replyError(resp.Error); err != nil {
		return nil, fmt.Errorf("%s failed: %w", ServiceAddTask, err)
	}
	return &resp, nil
}

func (a *taskAdapter) GetTask(ctx context.Context, taskID string) (*TaskResponse, error) {
	req := GetTaskRequest{TaskID: taskID}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceGetTask, err)
	}
	if err := replyError(resp.Error); err != nil {
		return nil, fmt.Errorf("%s failed: %w", ServiceGetTask, err)
	}
	return &resp, nil
}

func (a *taskAdapter) ListTasks(ctx context.Context, filter string) (*ListTasksResponse, error) {
	req := ListTasksRequest{Filter: filter}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListTasks,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceListTasks, err)
	}
	if err := replyError(resp.Error); err != nil {
		return nil, fmt.Errorf("%s failed: %w", ServiceListTasks, err)
	}
	return &resp, nil
}

func (a *taskAdapter) CompleteTask(ctx context.Context, taskID string) (*TaskResponse, error) {
	req := TransitionRequest{TaskID: taskID}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCompleteTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceCompleteTask, err)
	}
	if err := replyError(resp.Error); err != nil {
		return nil, fmt.Errorf("%s failed: %w", ServiceCompleteTask, err)
	}
	return &resp, nil
}

func (a *taskAdapter) ReopenTask(ctx context.Context, taskID string) (*TaskResponse, error) {
	req := TransitionRequest{TaskID: taskID}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceReopenTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceReopenTask, err)
	}
	if err := replyError(resp.Error); err != nil {
		return nil, fmt.Errorf("%s failed: %w", ServiceReopenTask, err)
	}
	return &resp, nil
}

func (a *taskAdapter) SetDefaultFilter(ctx context.Context, filter string) (*SetDefaultFilterResponse, error) {
	req := SetDefaultFilterRequest{Filter: filter}
	var resp SetDefaultFilterResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceSetDefaultFilter,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceSetDefaultFilter, err)
	}
	if err := replyError(resp.Error); err != nil {
		return nil, fmt.Errorf("%s failed: %w", ServiceSetDefaultFilter, err)
	}
	return &resp, nil
}
