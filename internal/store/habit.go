package store

import (
	"context"
	"fmt"

	"github.com/meganziesemer/taskapp-final/internal/domain/habit"
	"github.com/meganziesemer/taskapp-final/internal/repository"
)

// HabitRepository implements habit.Repository against the remote store.
type HabitRepository struct {
	client *Client
}

// NewHabitRepository creates a new HabitRepository.
func NewHabitRepository(client *Client) *HabitRepository {
	return &HabitRepository{client: client}
}

func (r *HabitRepository) List(ctx context.Context) ([]habit.Habit, error) {
	var habits []habit.Habit
	if err := r.client.list(ctx, repository.CollectionHabits, &habits); err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	return habits, nil
}

func (r *HabitRepository) Get(ctx context.Context, id string) (*habit.Habit, error) {
	var h habit.Habit
	if err := r.client.get(ctx, repository.CollectionHabits, id, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HabitRepository) Insert(ctx context.Context, h *habit.Habit) error {
	if h.CompletedDates == nil {
		h.CompletedDates = []string{}
	}
	return r.client.insert(ctx, repository.CollectionHabits, h)
}

func (r *HabitRepository) Update(ctx context.Context, id string, patch habit.Patch) error {
	return r.client.update(ctx, repository.CollectionHabits, id, patch)
}

func (r *HabitRepository) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, repository.CollectionHabits, id)
}
