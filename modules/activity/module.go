package activity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/tasklist/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Entry is one recorded task transition.
type Entry struct {
	TaskID    string    `json:"task_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry types.
const (
	TypeAdded     = "task_added"
	TypeCompleted = "task_completed"
	TypeReopened  = "task_reopened"
)

// ActivityModule subscribes to task events and keeps an in-memory feed.
type ActivityModule struct {
	entries []Entry
	mu      sync.RWMutex
	logger  types.Logger
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)

func NewModule(logger types.Logger) *ActivityModule {
	return &ActivityModule{
		entries: make([]Entry, 0),
		logger:  logger.WithModule("activity"),
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskAddedV1, m.handleTaskAdded, m); err != nil {
		return fmt.Errorf("failed to register TaskAdded consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskReopenedV1, m.handleTaskReopened, m); err != nil {
		return fmt.Errorf("failed to register TaskReopened consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"TaskAdded", "TaskCompleted", "TaskReopened"})
	return nil
}

func (m *ActivityModule) handleTaskAdded(_ context.Context, event events.TaskAddedEvent, _ *mono.Msg) error {
	m.logger.Info("Task added", "task_id", event.TaskID, "title", event.Title)
	m.record(event.TaskID, TypeAdded, fmt.Sprintf("Task '%s' added", event.Title), event.CreatedAt)
	return nil
}

func (m *ActivityModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.logger.Info("Task completed", "task_id", event.TaskID)
	m.record(event.TaskID, TypeCompleted, fmt.Sprintf("Task '%s' completed", event.Title), event.CompletedAt)
	return nil
}

func (m *ActivityModule) handleTaskReopened(_ context.Context, event events.TaskReopenedEvent, _ *mono.Msg) error {
	m.logger.Info("Task reopened", "task_id", event.TaskID)
	m.record(event.TaskID, TypeReopened, fmt.Sprintf("Task '%s' reopened", event.Title), event.ReopenedAt)
	return nil
}

func (m *ActivityModule) record(taskID, entryType, message string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{
		TaskID:    taskID,
		Type:      entryType,
		Message:   message,
		Timestamp: at,
	})
}

// Entries returns a copy of the recorded feed in arrival order.
func (m *ActivityModule) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, len(m.entries))
	copy(result, m.entries)
	return result
}

func (m *ActivityModule) Start(_ context.Context) error {
	m.logger.Info("Module started - listening for task events")
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	m.logger.Info("Module stopped")
	return nil
}
