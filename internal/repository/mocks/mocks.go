package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/meganziesemer/taskapp-final/internal/domain/habit"
	"github.com/meganziesemer/taskapp-final/internal/domain/project"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Insert(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Update(ctx context.Context, id string, patch project.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// HabitRepository is a mock for habit.Repository.
type HabitRepository struct {
	mock.Mock
}

func (m *HabitRepository) List(ctx context.Context) ([]habit.Habit, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]habit.Habit); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) Get(ctx context.Context, id string) (*habit.Habit, error) {
	args := m.Called(ctx, id)
	if h, ok := args.Get(0).(*habit.Habit); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) Insert(ctx context.Context, h *habit.Habit) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *HabitRepository) Update(ctx context.Context, id string, patch habit.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *HabitRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Refresher is a mock for the snapshot refresh hook services call after
// successful writes.
type Refresher struct {
	mock.Mock
}

func (m *Refresher) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
