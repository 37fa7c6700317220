package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meganziesemer/taskapp-final/internal/domain/habit"
	"github.com/meganziesemer/taskapp-final/internal/domain/project"
	"github.com/meganziesemer/taskapp-final/internal/store"
	"github.com/meganziesemer/taskapp-final/internal/sync"
	"github.com/meganziesemer/taskapp-final/internal/testserver"
)

type testEnv struct {
	server      *testserver.TestServer
	client      *store.Client
	projectRepo *store.ProjectRepository
	habitRepo   *store.HabitRepository
	controller  *sync.Controller

	projectSvc *project.Service
	habitSvc   *habit.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	server := testserver.New(t, "test-token")
	client := store.New(server.URL(), "test-token", nil)
	projectRepo := store.NewProjectRepository(client)
	habitRepo := store.NewHabitRepository(client)
	controller := sync.NewController(projectRepo, habitRepo, client, nil)

	return &testEnv{
		server:      server,
		client:      client,
		projectRepo: projectRepo,
		habitRepo:   habitRepo,
		controller:  controller,
		projectSvc:  project.NewService(projectRepo, controller, nil),
		habitSvc:    habit.NewService(habitRepo, controller, nil),
	}
}

func TestIntegration_ProjectTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, "Launch", "", "#3b82f6")
	require.NoError(t, err)
	require.Equal(t, project.StatusNeedsAction, proj.Status)
	require.Equal(t, "#3b82f6", proj.Color)

	task, err := env.projectSvc.AddTask(ctx, proj.ID, "Write docs", "2025-06-01")
	require.NoError(t, err)
	require.Equal(t, "2025-06-01", task.DueDate)
	require.False(t, task.IsCompleted)

	// The creating service refreshed the controller, so the snapshot
	// already reflects the store.
	snap := env.controller.Snapshot()
	require.Len(t, snap.Projects, 1)
	require.Len(t, snap.Projects[0].Tasks, 1)
	require.Equal(t, "Write docs", snap.Projects[0].Tasks[0].Title)

	require.NoError(t, env.projectSvc.ToggleTask(ctx, proj.ID, task.ID))
	stored, err := env.projectRepo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.True(t, stored.Tasks[0].IsCompleted)
	require.NotNil(t, stored.Tasks[0].CompletedDate)

	require.NoError(t, env.projectSvc.ToggleTask(ctx, proj.ID, task.ID))
	stored, err = env.projectRepo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.False(t, stored.Tasks[0].IsCompleted)
	require.Nil(t, stored.Tasks[0].CompletedDate)

	require.NoError(t, env.projectSvc.DeleteTask(ctx, proj.ID, task.ID))
	stored, err = env.projectRepo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Empty(t, stored.Tasks)

	require.NoError(t, env.projectSvc.Delete(ctx, proj.ID))
	projects, err := env.projectRepo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, projects)
	require.Empty(t, env.controller.Snapshot().Projects)
}

func TestIntegration_HabitLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	reading, err := env.habitSvc.Create(ctx, "Reading")
	require.NoError(t, err)
	running, err := env.habitSvc.Create(ctx, "Running")
	require.NoError(t, err)
	require.NotEqual(t, reading.Color, running.Color)

	require.NoError(t, env.habitSvc.ToggleDate(ctx, reading.ID, "2026-08-31"))
	require.NoError(t, env.habitSvc.ToggleDate(ctx, reading.ID, "2026-09-01"))

	stored, err := env.habitRepo.Get(ctx, reading.ID)
	require.NoError(t, err)
	require.Equal(t, 2, habit.Streak(*stored, "2026-09-01"))

	// Toggling an already-marked day unmarks it.
	require.NoError(t, env.habitSvc.ToggleDate(ctx, reading.ID, "2026-08-31"))
	stored, err = env.habitRepo.Get(ctx, reading.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"2026-09-01"}, stored.CompletedDates)

	require.NoError(t, env.habitSvc.Delete(ctx, reading.ID))
	habits, err := env.habitRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	require.Equal(t, "Running", habits[0].Name)
}

func TestIntegration_ReloadRaceLastIssuedWins(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.server.Seed("projects", map[string]any{
		"name": "First", "color": "#3b82f6", "status": "needs_action",
		"tasks": []any{},
	})

	// Hold the first reload's list response open past the second reload.
	env.server.SetDelay(400 * time.Millisecond)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- env.controller.Refresh(ctx)
	}()
	time.Sleep(100 * time.Millisecond)

	env.server.SetDelay(0)
	env.server.Seed("projects", map[string]any{
		"name": "Second", "color": "#8b5cf6", "status": "needs_action",
		"tasks": []any{},
	})
	require.NoError(t, env.controller.Refresh(ctx))

	require.NoError(t, <-firstDone)

	// The stale response from the first reload must not overwrite the
	// newer snapshot: both records stay visible.
	snap := env.controller.Snapshot()
	require.Len(t, snap.Projects, 2)
}

func TestIntegration_RunAppliesStreamedChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	env := newTestEnv(t)

	applied := make(chan sync.Snapshot, 16)
	env.controller.OnChange(func(snap sync.Snapshot) {
		applied <- snap
	})

	runDone := make(chan error, 1)
	go func() {
		runDone <- env.controller.Run(ctx)
	}()

	// Initial reload.
	waitForSnapshot(t, applied, func(s sync.Snapshot) bool {
		return len(s.Projects) == 0
	})
	require.Eventually(t, func() bool {
		return env.server.StreamCount("projects") == 1
	}, 5*time.Second, 10*time.Millisecond, "event stream never opened")

	// An insert through a second client emits a change event; the running
	// controller picks it up without being asked.
	other := store.New(env.server.URL(), "test-token", nil)
	writer := project.NewService(store.NewProjectRepository(other), nil, nil)
	_, err := writer.Create(ctx, "Streamed", "", "")
	require.NoError(t, err)

	waitForSnapshot(t, applied, func(s sync.Snapshot) bool {
		return len(s.Projects) == 1 && s.Projects[0].Name == "Streamed"
	})

	cancel()
	require.ErrorIs(t, <-runDone, context.Canceled)
}

func waitForSnapshot(t *testing.T, applied <-chan sync.Snapshot, ok func(sync.Snapshot) bool) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-applied:
			if ok(snap) {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}
