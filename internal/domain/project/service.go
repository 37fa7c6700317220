package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meganziesemer/taskapp-final/internal/dates"
	"github.com/meganziesemer/taskapp-final/internal/palette"
	"github.com/meganziesemer/taskapp-final/internal/repository"
)

// Service implements the project and task mutators. Every mutation reads the
// current record from the store, computes the full new value, writes it back,
// and then asks the refresher for a reload so the snapshot reflects server
// truth.
type Service struct {
	repo      Repository
	refresher Refresher
	logger    *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, refresher Refresher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, refresher: refresher, logger: logger}
}

// Create creates a new project with an empty task list. The color must come
// from the palette; anything else falls back to the default.
func (s *Service) Create(ctx context.Context, name, description, color string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if !palette.Contains(color) {
		color = palette.Default()
	}

	proj := &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Color:       color,
		CreatedAt:   time.Now(),
		Status:      StatusNeedsAction,
		Tasks:       []Task{},
	}

	if err := s.repo.Insert(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	s.refresh(ctx)
	return proj, nil
}

// Rename replaces the project name. An empty or unchanged name is a no-op and
// writes nothing.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	proj, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if proj.Name == name {
		return nil
	}

	if err := s.repo.Update(ctx, id, Patch{Name: &name}); err != nil {
		return fmt.Errorf("renaming project: %w", err)
	}
	s.refresh(ctx)
	return nil
}

// SetStatus replaces the attention flag. On a write failure the snapshot is
// re-fetched anyway so no stale optimistic state survives.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidInput
	}

	if err := s.repo.Update(ctx, id, Patch{Status: &status}); err != nil {
		s.refresh(ctx)
		return fmt.Errorf("setting project status: %w", err)
	}
	s.refresh(ctx)
	return nil
}

// Delete removes the project record. Confirmation is the caller's job.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	s.refresh(ctx)
	return nil
}

// AddTask appends a new pending task to the project's sequence and persists
// the whole record.
func (s *Service) AddTask(ctx context.Context, projectID, title, dueDate string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	if dueDate == "" {
		dueDate = dates.Today()
	}
	if !dates.Valid(dueDate) {
		return nil, fmt.Errorf("%w: due date %q", ErrInvalidInput, dueDate)
	}

	proj, err := s.get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	task := Task{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       title,
		IsCompleted: false,
		DueDate:     dueDate,
	}
	tasks := append(append([]Task{}, proj.Tasks...), task)

	if err := s.repo.Update(ctx, projectID, Patch{Tasks: &tasks}); err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}
	s.refresh(ctx)
	return &task, nil
}

// ToggleTask flips a task's completion state. Completing stamps CompletedDate
// with the current instant; reopening clears it.
func (s *Service) ToggleTask(ctx context.Context, projectID, taskID string) error {
	proj, err := s.get(ctx, projectID)
	if err != nil {
		return err
	}

	tasks := append([]Task{}, proj.Tasks...)
	found := false
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}
		found = true
		tasks[i].IsCompleted = !tasks[i].IsCompleted
		if tasks[i].IsCompleted {
			now := time.Now().Format(time.RFC3339)
			tasks[i].CompletedDate = &now
		} else {
			tasks[i].CompletedDate = nil
		}
		break
	}
	if !found {
		return ErrTaskNotFound
	}

	if err := s.repo.Update(ctx, projectID, Patch{Tasks: &tasks}); err != nil {
		return fmt.Errorf("toggling task: %w", err)
	}
	s.refresh(ctx)
	return nil
}

// DeleteTask removes a task from the project's sequence. A missing task is a
// no-op: the sequence is already in the desired state.
func (s *Service) DeleteTask(ctx context.Context, projectID, taskID string) error {
	proj, err := s.get(ctx, projectID)
	if err != nil {
		return err
	}

	tasks := make([]Task, 0, len(proj.Tasks))
	for _, t := range proj.Tasks {
		if t.ID != taskID {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == len(proj.Tasks) {
		return nil
	}

	if err := s.repo.Update(ctx, projectID, Patch{Tasks: &tasks}); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	s.refresh(ctx)
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// refresh is best-effort: a failed reload keeps the last-good snapshot and the
// next change notification will catch the client up.
func (s *Service) refresh(ctx context.Context) {
	if s.refresher == nil {
		return
	}
	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Warn("snapshot refresh after write failed", "error", err)
	}
}
