package habit

import "context"

// Repository provides persistence for habit records.
type Repository interface {
	List(ctx context.Context) ([]Habit, error)
	Get(ctx context.Context, id string) (*Habit, error)
	Insert(ctx context.Context, h *Habit) error
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
}

// Refresher reloads the in-memory snapshot from the store.
type Refresher interface {
	Refresh(ctx context.Context) error
}
