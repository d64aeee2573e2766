package task

import (
	"fmt"
	"strings"
	"time"
)

// State represents the completion state of a task.
type State string

const (
	StateActive   State = "active"
	StateComplete State = "complete"
)

func (s State) String() string {
	return string(s)
}

// Filter selects tasks by state.
type Filter string

const (
	FilterActive   Filter = "active"
	FilterComplete Filter = "complete"
	FilterAll      Filter = "all"
)

func (f Filter) String() string {
	return string(f)
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterActive, FilterComplete, FilterAll:
		return true
	default:
		return false
	}
}

// Matches reports whether a task in state s is selected by the filter.
// Unknown filters select nothing.
func (f Filter) Matches(s State) bool {
	switch f {
	case FilterActive:
		return s == StateActive
	case FilterComplete:
		return s == StateComplete
	case FilterAll:
		return true
	default:
		return false
	}
}

// ParseFilter converts text into a Filter. "completed" and "closed" are
// accepted as aliases for complete.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return FilterActive, nil
	case "complete", "completed", "closed":
		return FilterComplete, nil
	case "all":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

// Task is a single to-do entry.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	State       State      `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask creates an active task created at the given time.
func NewTask(id, title string, now time.Time) Task {
	return Task{
		ID:        id,
		Title:     title,
		State:     StateActive,
		CreatedAt: now,
	}
}

// IsComplete reports whether the task is complete.
func (t *Task) IsComplete() bool {
	return t.State == StateComplete
}

// Transition moves the task to state. CompletedAt is set when the task
// becomes complete and cleared when it becomes active, so the two fields
// never disagree. Completing an already complete task keeps the original
// completion time.
func (t *Task) Transition(state State, at time.Time) error {
	switch state {
	case StateComplete:
		if t.State == StateComplete && t.CompletedAt != nil {
			return nil
		}
		completed := at
		t.CompletedAt = &completed
	case StateActive:
		t.CompletedAt = nil
	default:
		return fmt.Errorf("invalid task state: %q", state)
	}
	t.State = state
	return nil
}

// clone returns a copy that shares no memory with t.
func (t Task) clone() Task {
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		t.CompletedAt = &completed
	}
	return t
}
