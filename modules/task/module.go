package task

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	domain "github.com/example/tasklist/domain/task"
	"github.com/example/tasklist/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Service names registered by the task module.
const (
	ServiceAddTask          = "add-task"
	ServiceGetTask          = "get-task"
	ServiceListTasks        = "list-tasks"
	ServiceCompleteTask     = "complete-task"
	ServiceReopenTask       = "reopen-task"
	ServiceSetDefaultFilter = "set-default-filter"
)

// TaskModule owns the task list and exposes it as request-reply services.
// The list itself has no locking; every service handler holds mu.
type TaskModule struct {
	list     *domain.List
	mu       sync.RWMutex
	logger   types.Logger
	eventBus mono.EventBus
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a task module backed by a new, empty list.
func NewModule(logger types.Logger, opts ...domain.Option) *TaskModule {
	return &TaskModule{
		list:   domain.NewList(opts...),
		logger: logger.WithModule("task"),
	}
}

func (m *TaskModule) Name() string {
	return "task"
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskAddedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
		events.TaskReopenedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAddTask, json.Unmarshal, json.Marshal, m.addTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAddTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetTask, json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListTasks, json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListTasks, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCompleteTask, json.Unmarshal, json.Marshal, m.completeTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCompleteTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceReopenTask, json.Unmarshal, json.Marshal, m.reopenTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceReopenTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceSetDefaultFilter, json.Unmarshal, json.Marshal, m.setDefaultFilter,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceSetDefaultFilter, err)
	}

	m.logger.Info("Registered services",
		"services", []string{
			ServiceAddTask, ServiceGetTask, ServiceListTasks,
			ServiceCompleteTask, ServiceReopenTask, ServiceSetDefaultFilter,
		})
	return nil
}

func (m *TaskModule) Start(_ context.Context) error {
	if m.eventBus == nil {
		m.logger.Warn("eventBus not set, events will not be published")
	}
	m.logger.Info("Module started", "default_filter", m.defaultFilter().String())
	return nil
}

func (m *TaskModule) Stop(_ context.Context) error {
	m.logger.Info("Module stopped")
	return nil
}

// Health reports task counts per state.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"total":          m.list.Len(),
			"active":         m.list.Count(domain.StateActive),
			"complete":       m.list.Count(domain.StateComplete),
			"default_filter": m.list.DefaultFilter().String(),
		},
	}
}

func (m *TaskModule) defaultFilter() domain.Filter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.list.DefaultFilter()
}
