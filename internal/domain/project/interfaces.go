package project

import "context"

// Repository provides persistence for project records.
type Repository interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Insert(ctx context.Context, proj *Project) error
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
}

// Refresher reloads the in-memory snapshot from the store.
type Refresher interface {
	Refresh(ctx context.Context) error
}
