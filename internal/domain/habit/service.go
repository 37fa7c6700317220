package habit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/meganziesemer/taskapp-final/internal/dates"
	"github.com/meganziesemer/taskapp-final/internal/palette"
	"github.com/meganziesemer/taskapp-final/internal/repository"
)

// Service implements the habit mutators: read the current record, compute the
// full new value, write it back, reload.
type Service struct {
	repo      Repository
	refresher Refresher
	logger    *slog.Logger
}

// NewService creates a new habit service.
func NewService(repo Repository, refresher Refresher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, refresher: refresher, logger: logger}
}

// Create creates a new habit. The color is assigned round-robin from the
// palette, keyed on the current habit count.
func (s *Service) Create(ctx context.Context, name string) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting habits: %w", err)
	}

	h := &Habit{
		ID:             uuid.NewString(),
		Name:           name,
		Color:          palette.Pick(len(existing)),
		CompletedDates: []string{},
	}

	if err := s.repo.Insert(ctx, h); err != nil {
		return nil, fmt.Errorf("creating habit: %w", err)
	}
	s.refresh(ctx)
	return h, nil
}

// ToggleDate adds day to the habit's completed set if absent, or removes it if
// present. Toggling twice restores the original set.
func (s *Service) ToggleDate(ctx context.Context, id, day string) error {
	if !dates.Valid(day) {
		return fmt.Errorf("%w: day %q", ErrInvalidInput, day)
	}

	h, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	updated := make([]string, 0, len(h.CompletedDates)+1)
	removed := false
	for _, d := range h.CompletedDates {
		if d == day {
			removed = true
			continue
		}
		updated = append(updated, d)
	}
	if !removed {
		updated = append(updated, day)
	}

	if err := s.repo.Update(ctx, id, Patch{CompletedDates: &updated}); err != nil {
		return fmt.Errorf("toggling habit date: %w", err)
	}
	s.refresh(ctx)
	return nil
}

// Delete removes the habit record. Confirmation is the caller's job.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting habit: %w", err)
	}
	s.refresh(ctx)
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*Habit, error) {
	h, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("getting habit: %w", err)
	}
	return h, nil
}

func (s *Service) refresh(ctx context.Context) {
	if s.refresher == nil {
		return
	}
	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Warn("snapshot refresh after write failed", "error", err)
	}
}
