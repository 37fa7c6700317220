package sync_test

import (
	"context"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meganziesemer/taskapp-final/internal/domain/habit"
	"github.com/meganziesemer/taskapp-final/internal/domain/project"
	"github.com/meganziesemer/taskapp-final/internal/repository"
	"github.com/meganziesemer/taskapp-final/internal/sync"
)

// fakeProjects serves canned project lists with an optional per-call delay,
// for staging reload races.
type fakeProjects struct {
	mu      stdsync.Mutex
	results [][]project.Project
	delays  []time.Duration
	calls   int
	err     error
}

func (f *fakeProjects) List(ctx context.Context) ([]project.Project, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	var delay time.Duration
	if call < len(f.delays) {
		delay = f.delays[call]
	}
	var result []project.Project
	if len(f.results) > 0 {
		if call < len(f.results) {
			result = f.results[call]
		} else {
			result = f.results[len(f.results)-1]
		}
	}
	err := f.err
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return result, err
}

func (f *fakeProjects) Get(ctx context.Context, id string) (*project.Project, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeProjects) Insert(ctx context.Context, proj *project.Project) error { return nil }
func (f *fakeProjects) Update(ctx context.Context, id string, patch project.Patch) error {
	return nil
}
func (f *fakeProjects) Delete(ctx context.Context, id string) error { return nil }

type fakeHabits struct {
	mu     stdsync.Mutex
	result []habit.Habit
	err    error
}

func (f *fakeHabits) List(ctx context.Context) ([]habit.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.err
}
func (f *fakeHabits) Get(ctx context.Context, id string) (*habit.Habit, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeHabits) Insert(ctx context.Context, h *habit.Habit) error               { return nil }
func (f *fakeHabits) Update(ctx context.Context, id string, patch habit.Patch) error { return nil }
func (f *fakeHabits) Delete(ctx context.Context, id string) error                    { return nil }

type fakeSubscriber struct {
	channels map[string]chan struct{}
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{channels: map[string]chan struct{}{
		repository.CollectionProjects: make(chan struct{}, 1),
		repository.CollectionHabits:   make(chan struct{}, 1),
	}}
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, collection string) (<-chan struct{}, error) {
	return f.channels[collection], nil
}

func TestController_RefreshPopulatesSortedSnapshot(t *testing.T) {
	projects := &fakeProjects{results: [][]project.Project{{
		{ID: "p1", Name: "zeta", Status: project.StatusNeedsAction},
		{ID: "p2", Name: "alpha", Status: project.StatusCaughtUp},
		{ID: "p3", Name: "beta", Status: project.StatusNeedsAction},
	}}}
	habits := &fakeHabits{result: []habit.Habit{{ID: "h1", Name: "Read"}}}

	ctrl := sync.NewController(projects, habits, newFakeSubscriber(), nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	snap := ctrl.Snapshot()
	require.Len(t, snap.Projects, 3)
	require.Equal(t, "beta", snap.Projects[0].Name)
	require.Equal(t, "zeta", snap.Projects[1].Name)
	require.Equal(t, "alpha", snap.Projects[2].Name)
	require.Len(t, snap.Habits, 1)
	require.Equal(t, sync.StateIdle, ctrl.State())
}

func TestController_RefreshFailureKeepsLastGood(t *testing.T) {
	projects := &fakeProjects{results: [][]project.Project{{{ID: "p1", Name: "Launch"}}}}
	habits := &fakeHabits{}

	ctrl := sync.NewController(projects, habits, newFakeSubscriber(), nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	habits.mu.Lock()
	habits.err = repository.ErrUnavailable
	habits.mu.Unlock()

	err := ctrl.Refresh(context.Background())
	require.ErrorIs(t, err, repository.ErrUnavailable)

	snap := ctrl.Snapshot()
	require.Len(t, snap.Projects, 1)
	require.Equal(t, "Launch", snap.Projects[0].Name)
}

func TestController_ReloadRaceLastIssuedWins(t *testing.T) {
	// The first reload resolves after the second; its stale result must be
	// discarded, not merged.
	projects := &fakeProjects{
		results: [][]project.Project{
			{{ID: "p1", Name: "stale"}},
			{{ID: "p1", Name: "fresh"}},
		},
		delays: []time.Duration{300 * time.Millisecond, 0},
	}
	ctrl := sync.NewController(projects, &fakeHabits{}, newFakeSubscriber(), nil)

	var wg stdsync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = ctrl.Refresh(context.Background())
	}()
	time.Sleep(50 * time.Millisecond)
	go func() {
		defer wg.Done()
		_ = ctrl.Refresh(context.Background())
	}()
	wg.Wait()

	snap := ctrl.Snapshot()
	require.Len(t, snap.Projects, 1)
	require.Equal(t, "fresh", snap.Projects[0].Name)
}

func TestController_SnapshotIsACopy(t *testing.T) {
	projects := &fakeProjects{results: [][]project.Project{{
		{ID: "p1", Name: "Launch", Tasks: []project.Task{{ID: "t1", Title: "doc"}}},
	}}}
	ctrl := sync.NewController(projects, &fakeHabits{}, newFakeSubscriber(), nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	snap := ctrl.Snapshot()
	snap.Projects[0].Tasks[0].Title = "mutated"
	snap.Projects[0].Name = "mutated"

	again := ctrl.Snapshot()
	require.Equal(t, "Launch", again.Projects[0].Name)
	require.Equal(t, "doc", again.Projects[0].Tasks[0].Title)
}

func TestController_RunRefreshesOnSignal(t *testing.T) {
	projects := &fakeProjects{results: [][]project.Project{
		{{ID: "p1", Name: "one"}},
		{{ID: "p1", Name: "one"}, {ID: "p2", Name: "two"}},
	}}
	sub := newFakeSubscriber()
	ctrl := sync.NewController(projects, &fakeHabits{}, sub, nil)

	applied := make(chan sync.Snapshot, 8)
	ctrl.OnChange(func(s sync.Snapshot) { applied <- s })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- ctrl.Run(ctx) }()

	// Initial load.
	select {
	case snap := <-applied:
		require.Len(t, snap.Projects, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("initial load did not apply")
	}

	// Another client changed the projects collection.
	sub.channels[repository.CollectionProjects] <- struct{}{}
	select {
	case snap := <-applied:
		require.Len(t, snap.Projects, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("signal-triggered reload did not apply")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestController_StateLoadingWhileInFlight(t *testing.T) {
	projects := &fakeProjects{
		results: [][]project.Project{{}},
		delays:  []time.Duration{200 * time.Millisecond},
	}
	ctrl := sync.NewController(projects, &fakeHabits{}, newFakeSubscriber(), nil)

	done := make(chan struct{})
	go func() {
		_ = ctrl.Refresh(context.Background())
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, sync.StateLoading, ctrl.State())
	<-done
	require.Equal(t, sync.StateIdle, ctrl.State())
}
