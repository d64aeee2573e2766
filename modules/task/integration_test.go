package task

import (
	"context"
	"testing"
	"time"

	domain "github.com/example/tasklist/domain/task"
	"github.com/example/tasklist/modules/activity"
	"github.com/go-monolith/mono"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clientModule depends on the task module and reaches it through the adapter,
// the same way the API module does.
type clientModule struct {
	port TaskPort
}

var _ mono.Module = (*clientModule)(nil)
var _ mono.DependentModule = (*clientModule)(nil)

func (c *clientModule) Name() string { return "client" }

func (c *clientModule) Dependencies() []string { return []string{"task"} }

func (c *clientModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "task" {
		c.port = NewTaskAdapter(container)
	}
}

func (c *clientModule) Start(_ context.Context) error { return nil }

func (c *clientModule) Stop(_ context.Context) error { return nil }

type testApp struct {
	port  TaskPort
	feed  *activity.ActivityModule
	clock time.Time
}

// startTestApp runs the task and activity modules in a real mono application
// with embedded NATS.
func startTestApp(t *testing.T) *testApp {
	t.Helper()

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
	)
	require.NoError(t, err)

	fixed := time.Date(2026, 6, 7, 8, 9, 10, 0, time.UTC)
	logger := app.Logger()
	feed := activity.NewModule(logger)
	client := &clientModule{}

	app.Register(feed)
	app.Register(NewModule(logger, domain.WithClock(func() time.Time { return fixed })))
	app.Register(client)

	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})
	require.NotNil(t, client.port)

	return &testApp{port: client.port, feed: feed, clock: fixed}
}

func TestAdapter_NotFoundCrossesServiceBoundary(t *testing.T) {
	ta := startTestApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	calls := map[string]func() (*TaskResponse, error){
		"get":      func() (*TaskResponse, error) { return ta.port.GetTask(ctx, "missing") },
		"complete": func() (*TaskResponse, error) { return ta.port.CompleteTask(ctx, "missing") },
		"reopen":   func() (*TaskResponse, error) { return ta.port.ReopenTask(ctx, "missing") },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			resp, err := call()

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestAdapter_InvalidFilterCrossesServiceBoundary(t *testing.T) {
	ta := startTestApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ta.port.ListTasks(ctx, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)

	_, err = ta.port.SetDefaultFilter(ctx, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestAdapter_FilterScenario(t *testing.T) {
	ta := startTestApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, err := ta.port.AddTask(ctx, "A")
	require.NoError(t, err)
	_, err = ta.port.AddTask(ctx, "B")
	require.NoError(t, err)

	completed, err := ta.port.CompleteTask(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "complete", completed.State)
	require.NotNil(t, completed.CompletedAt)

	want := map[string][]string{
		"active":   {"B"},
		"complete": {"A"},
		"all":      {"A", "B"},
		"":         {"A", "B"},
	}
	for filter, titles := range want {
		resp, err := ta.port.ListTasks(ctx, filter)
		require.NoError(t, err, "filter %q", filter)
		assert.Equal(t, titles, responseTitles(resp.Tasks), "filter %q", filter)
	}

	set, err := ta.port.SetDefaultFilter(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, "active", set.Filter)

	resp, err := ta.port.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, responseTitles(resp.Tasks))
}

func TestAdapter_EventsReachActivityFeed(t *testing.T) {
	ta := startTestApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	added, err := ta.port.AddTask(ctx, "A")
	require.NoError(t, err)
	_, err = ta.port.CompleteTask(ctx, added.ID)
	require.NoError(t, err)
	_, err = ta.port.ReopenTask(ctx, added.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(ta.feed.Entries()) >= 3
	}, 5*time.Second, 20*time.Millisecond)

	entries := ta.feed.Entries()
	kinds := make([]string, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, e.Type)
		assert.Equal(t, added.ID, e.TaskID)
		assert.True(t, e.Timestamp.Equal(ta.clock), "timestamp %s not from list clock", e.Timestamp)
	}
	assert.ElementsMatch(t, []string{activity.TypeAdded, activity.TypeCompleted, activity.TypeReopened}, kinds)
}
