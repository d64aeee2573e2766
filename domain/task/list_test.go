package task

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a time source that advances one second per call.
func fakeClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func newTestList(opts ...Option) *List {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return NewList(append([]Option{WithClock(fakeClock(start))}, opts...)...)
}

func titles(tasks []Task) []string {
	result := make([]string, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, t.Title)
	}
	return result
}

func TestNewList_Defaults(t *testing.T) {
	l := NewList()

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, FilterAll, l.DefaultFilter())
	assert.Empty(t, l.All())
}

func TestAdd_CreatesActiveTask(t *testing.T) {
	l := newTestList()

	id := l.Add("write report")
	require.NotEmpty(t, id)

	got, err := l.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "write report", got.Title)
	assert.Equal(t, StateActive, got.State)
	assert.Nil(t, got.CompletedAt)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestAdd_AllowsEmptyAndDuplicateTitles(t *testing.T) {
	l := newTestList()

	a := l.Add("")
	b := l.Add("same")
	c := l.Add("same")

	assert.NotEqual(t, b, c)
	assert.NotEqual(t, a, b)
	assert.Equal(t, []string{"", "same", "same"}, titles(l.All()))
}

func TestMarkComplete_SetsStateAndTimestamp(t *testing.T) {
	l := newTestList()
	id := l.Add("A")

	require.NoError(t, l.MarkComplete(id))

	got, err := l.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StateComplete, got.State)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(got.CreatedAt))
}

func TestMarkComplete_TwiceKeepsFirstTimestamp(t *testing.T) {
	l := newTestList()
	id := l.Add("A")

	require.NoError(t, l.MarkComplete(id))
	first, err := l.Get(id)
	require.NoError(t, err)

	require.NoError(t, l.MarkComplete(id))
	second, err := l.Get(id)
	require.NoError(t, err)

	assert.Equal(t, StateComplete, second.State)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))
}

func TestMarkActive_ClearsCompletion(t *testing.T) {
	tests := []struct {
		name     string
		complete bool
	}{
		{name: "from active", complete: false},
		{name: "from complete", complete: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestList()
			id := l.Add("A")
			if tt.complete {
				require.NoError(t, l.MarkComplete(id))
			}

			require.NoError(t, l.MarkActive(id))

			got, err := l.Get(id)
			require.NoError(t, err)
			assert.Equal(t, StateActive, got.State)
			assert.Nil(t, got.CompletedAt)
		})
	}
}

func TestMarkActive_ThenCompleteAgainUsesNewTimestamp(t *testing.T) {
	l := newTestList()
	id := l.Add("A")

	require.NoError(t, l.MarkComplete(id))
	first, _ := l.Get(id)
	require.NoError(t, l.MarkActive(id))
	require.NoError(t, l.MarkComplete(id))
	second, _ := l.Get(id)

	require.NotNil(t, second.CompletedAt)
	assert.True(t, second.CompletedAt.After(*first.CompletedAt))
}

func TestTransitions_UnknownID(t *testing.T) {
	operations := map[string]func(*List, string) error{
		"complete": (*List).MarkComplete,
		"active":   (*List).MarkActive,
	}

	for name, op := range operations {
		t.Run(name, func(t *testing.T) {
			l := newTestList()
			l.Add("A")
			before := l.All()

			err := op(l, "missing")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotFound))

			var nf *NotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, "missing", nf.ID)

			assert.Equal(t, before, l.All())
		})
	}
}

func TestGet_UnknownID(t *testing.T) {
	l := newTestList()

	_, err := l.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilter_Scenario(t *testing.T) {
	l := newTestList()
	a := l.Add("A")
	l.Add("B")

	require.NoError(t, l.MarkComplete(a))

	assert.Equal(t, []string{"B"}, titles(l.Filter(FilterActive)))
	assert.Equal(t, []string{"A"}, titles(l.Filter(FilterComplete)))
	assert.Equal(t, []string{"A", "B"}, titles(l.Filter(FilterAll)))
}

func TestFilter_PartitionsAll(t *testing.T) {
	l := newTestList()
	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, l.Add(fmt.Sprintf("task-%d", i)))
	}
	for i, id := range ids {
		if i%3 == 0 {
			require.NoError(t, l.MarkComplete(id))
		}
	}

	all := l.Filter(FilterAll)
	active := l.Filter(FilterActive)
	complete := l.Filter(FilterComplete)

	require.Len(t, all, len(ids))
	for i, task := range all {
		assert.Equal(t, ids[i], task.ID)
	}

	seen := make(map[string]State)
	for _, task := range active {
		assert.Equal(t, StateActive, task.State)
		seen[task.ID] = task.State
	}
	for _, task := range complete {
		assert.Equal(t, StateComplete, task.State)
		_, dup := seen[task.ID]
		assert.False(t, dup, "task %s in both active and complete", task.ID)
		seen[task.ID] = task.State
	}
	assert.Len(t, seen, len(all))
	assert.Equal(t, 4, l.Count(StateComplete))
	assert.Equal(t, 6, l.Count(StateActive))
}

func TestFilter_ReturnsCopies(t *testing.T) {
	l := newTestList()
	id := l.Add("A")
	require.NoError(t, l.MarkComplete(id))

	view := l.All()
	view[0].Title = "changed"
	view[0].State = StateActive
	*view[0].CompletedAt = time.Time{}

	got, err := l.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, StateComplete, got.State)
	assert.False(t, got.CompletedAt.IsZero())
}

func TestVisible_UsesDefaultFilter(t *testing.T) {
	l := newTestList(WithDefaultFilter(FilterActive))
	a := l.Add("A")
	l.Add("B")
	require.NoError(t, l.MarkComplete(a))

	assert.Equal(t, []string{"B"}, titles(l.Visible()))

	require.NoError(t, l.SetDefaultFilter(FilterComplete))
	assert.Equal(t, FilterComplete, l.DefaultFilter())
	assert.Equal(t, []string{"A"}, titles(l.Visible()))

	require.NoError(t, l.SetDefaultFilter(FilterAll))
	assert.Equal(t, []string{"A", "B"}, titles(l.Visible()))
}

func TestDefaultFilter_RejectsUnknownValues(t *testing.T) {
	l := newTestList(WithDefaultFilter("bogus"))
	a := l.Add("A")
	l.Add("B")
	require.NoError(t, l.MarkComplete(a))

	assert.Equal(t, FilterAll, l.DefaultFilter())
	assert.Empty(t, l.Filter("bogus"))

	require.NoError(t, l.SetDefaultFilter(FilterActive))
	err := l.SetDefaultFilter("bogus")
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, FilterActive, l.DefaultFilter())
	assert.Equal(t, []string{"B"}, titles(l.Visible()))
}

func TestAdd_RegeneratesCollidingIDs(t *testing.T) {
	ids := []string{"x", "x", "", "y"}
	next := 0
	l := newTestList(WithIDGenerator(func() string {
		id := ids[next%len(ids)]
		next++
		return id
	}))

	first := l.Add("A")
	second := l.Add("B")

	assert.Equal(t, "x", first)
	assert.Equal(t, "y", second)
}

func TestAdd_FallsBackWhenGeneratorAlwaysCollides(t *testing.T) {
	l := newTestList(WithIDGenerator(func() string { return "fixed" }))

	first := l.Add("A")
	second := l.Add("B")

	assert.Equal(t, "fixed", first)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, l.Len())
}
