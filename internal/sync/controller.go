// Package sync owns the client's in-memory snapshot of all projects and
// habits. The snapshot only ever changes through full reloads: fetch both
// collections, replace everything. Correctness comes from never drifting from
// server truth, not from patching.
package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/meganziesemer/taskapp-final/internal/domain/habit"
	"github.com/meganziesemer/taskapp-final/internal/domain/project"
	"github.com/meganziesemer/taskapp-final/internal/repository"
)

// State reports whether a reload is in flight.
type State int

const (
	StateIdle State = iota
	StateLoading
)

// Snapshot is the complete in-memory copy of the user's data. Values handed
// out never alias controller-owned slices.
type Snapshot struct {
	Projects []project.Project
	Habits   []habit.Habit
}

// Controller reconciles the snapshot with the remote store: a full reload on
// start, on every change notification, and after every local write.
type Controller struct {
	projects   project.Repository
	habits     habit.Repository
	subscriber repository.Subscriber
	logger     *slog.Logger

	// onChange, if set, runs after each applied reload with a copy of the
	// new snapshot. Set before Run; not guarded.
	onChange func(Snapshot)

	mu       sync.RWMutex
	snapshot Snapshot
	loading  int
	// seq numbers reloads; a reload only lands if no newer one was issued
	// while it was in flight, so two racing reloads can't interleave and a
	// slow stale response can't clobber a fresher one.
	seq     uint64
	applied uint64
}

// NewController creates a controller over the two collections.
func NewController(projects project.Repository, habits habit.Repository, subscriber repository.Subscriber, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		projects:   projects,
		habits:     habits,
		subscriber: subscriber,
		logger:     logger,
	}
}

// OnChange registers a callback invoked after every applied reload. Must be
// called before Run.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.onChange = fn
}

// State reports Idle or Loading.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.loading > 0 {
		return StateLoading
	}
	return StateIdle
}

// Snapshot returns a copy of the current snapshot. Callers may hold or mutate
// it freely.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copySnapshot(c.snapshot)
}

// Refresh reloads both collections in parallel and applies the result as a
// whole-snapshot replacement. If a newer Refresh was issued while this one was
// in flight, this result is discarded: last issued wins. On failure the
// last-good snapshot is retained.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading--
		c.mu.Unlock()
	}()

	var (
		projects []project.Project
		habits   []habit.Habit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = c.projects.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		habits, err = c.habits.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Warn("reload failed, keeping last-good snapshot", "error", err)
		return fmt.Errorf("reloading snapshot: %w", err)
	}

	project.SortForDisplay(projects)

	c.mu.Lock()
	if seq < c.seq || seq <= c.applied {
		// A newer reload was issued (or already landed) while this one was
		// in flight; drop this result.
		c.mu.Unlock()
		c.logger.Debug("discarding stale reload", "seq", seq)
		return nil
	}
	c.snapshot = Snapshot{Projects: projects, Habits: habits}
	c.applied = seq
	snap := copySnapshot(c.snapshot)
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(snap)
	}
	return nil
}

// Run performs the initial reload, then refreshes on every change
// notification from either collection until ctx is done. The initial reload
// failure is tolerated: the store may come up after the client, and the first
// notification will catch us up.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("initial load failed", "error", err)
	}

	projectSignals, err := c.subscriber.Subscribe(ctx, repository.CollectionProjects)
	if err != nil {
		return fmt.Errorf("subscribing to projects: %w", err)
	}
	habitSignals, err := c.subscriber.Subscribe(ctx, repository.CollectionHabits)
	if err != nil {
		return fmt.Errorf("subscribing to habits: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-projectSignals:
			if !ok {
				projectSignals = nil
				continue
			}
			c.refreshOnSignal(ctx, repository.CollectionProjects)
		case _, ok := <-habitSignals:
			if !ok {
				habitSignals = nil
				continue
			}
			c.refreshOnSignal(ctx, repository.CollectionHabits)
		}
	}
}

func (c *Controller) refreshOnSignal(ctx context.Context, collection string) {
	c.logger.Debug("change notification", "collection", collection)
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("reload after change notification failed", "collection", collection, "error", err)
	}
}

func copySnapshot(s Snapshot) Snapshot {
	out := Snapshot{
		Projects: make([]project.Project, len(s.Projects)),
		Habits:   make([]habit.Habit, len(s.Habits)),
	}
	for i, p := range s.Projects {
		out.Projects[i] = p.Clone()
	}
	for i, h := range s.Habits {
		out.Habits[i] = h.Clone()
	}
	return out
}
