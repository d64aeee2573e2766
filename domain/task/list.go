package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// maxIDAttempts bounds regeneration when the id generator collides.
const maxIDAttempts = 16

// List is an ordered collection of tasks. Insertion order is the canonical
// order returned by every query.
//
// List is not safe for concurrent use; callers that share a List across
// goroutines must guard it with a single lock.
type List struct {
	tasks         []Task
	index         map[string]int
	defaultFilter Filter
	now           func() time.Time
	newID         func() string
}

// Option configures a List.
type Option func(*List)

// WithClock sets the time source used for created and completed timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *List) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator sets the function used to generate task ids.
func WithIDGenerator(newID func() string) Option {
	return func(l *List) {
		if newID != nil {
			l.newID = newID
		}
	}
}

// WithDefaultFilter sets the filter used by Visible. Unknown filters are
// ignored.
func WithDefaultFilter(f Filter) Option {
	return func(l *List) {
		if f.Valid() {
			l.defaultFilter = f
		}
	}
}

// NewList creates an empty list whose default filter is FilterAll.
func NewList(opts ...Option) *List {
	l := &List{
		index:         make(map[string]int),
		defaultFilter: FilterAll,
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add appends a new active task and returns its id.
func (l *List) Add(title string) string {
	id := l.generateID()
	l.index[id] = len(l.tasks)
	l.tasks = append(l.tasks, NewTask(id, title, l.now()))
	return id
}

// generateID returns an id not yet present in the list. A generator that
// keeps colliding falls back to a random UUID.
func (l *List) generateID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := l.newID()
		if _, exists := l.index[id]; !exists && id != "" {
			return id
		}
	}
	for {
		id := uuid.New().String()
		if _, exists := l.index[id]; !exists {
			return id
		}
	}
}

// Get returns a copy of the task with the given id.
func (l *List) Get(id string) (Task, error) {
	t, err := l.lookup(id)
	if err != nil {
		return Task{}, err
	}
	return t.clone(), nil
}

// MarkComplete marks the task complete. Completing a complete task keeps
// its original completion time.
func (l *List) MarkComplete(id string) error {
	return l.transition(id, StateComplete)
}

// MarkActive marks the task active and clears its completion time.
func (l *List) MarkActive(id string) error {
	return l.transition(id, StateActive)
}

func (l *List) transition(id string, state State) error {
	t, err := l.lookup(id)
	if err != nil {
		return err
	}
	return t.Transition(state, l.now())
}

func (l *List) lookup(id string) (*Task, error) {
	pos, ok := l.index[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return &l.tasks[pos], nil
}

// Filter returns copies of the tasks selected by f, in list order.
func (l *List) Filter(f Filter) []Task {
	result := make([]Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if f.Matches(t.State) {
			result = append(result, t.clone())
		}
	}
	return result
}

// Visible returns the tasks selected by the default filter.
func (l *List) Visible() []Task {
	return l.Filter(l.defaultFilter)
}

// All returns copies of every task in list order.
func (l *List) All() []Task {
	return l.Filter(FilterAll)
}

// Len returns the number of tasks in the list.
func (l *List) Len() int {
	return len(l.tasks)
}

// Count returns the number of tasks in state s.
func (l *List) Count(s State) int {
	n := 0
	for _, t := range l.tasks {
		if t.State == s {
			n++
		}
	}
	return n
}

func (l *List) DefaultFilter() Filter {
	return l.defaultFilter
}

// SetDefaultFilter changes the filter used by Visible.
func (l *List) SetDefaultFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, f)
	}
	l.defaultFilter = f
	return nil
}

// Now returns the current time from the list's clock.
func (l *List) Now() time.Time {
	return l.now()
}
