package store

import (
	"context"
	"fmt"

	"github.com/meganziesemer/taskapp-final/internal/domain/project"
	"github.com/meganziesemer/taskapp-final/internal/repository"
)

// ProjectRepository implements project.Repository against the remote store.
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(client *Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// List fetches all project records. Embedded tasks come along with each
// record; there is no separate task collection.
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	var projects []project.Project
	if err := r.client.list(ctx, repository.CollectionProjects, &projects); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Get fetches a single project record by id.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	var proj project.Project
	if err := r.client.get(ctx, repository.CollectionProjects, id, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// Insert creates a new project record.
func (r *ProjectRepository) Insert(ctx context.Context, proj *project.Project) error {
	if proj.Tasks == nil {
		proj.Tasks = []project.Task{}
	}
	return r.client.insert(ctx, repository.CollectionProjects, proj)
}

// Update replaces the attributes named in patch on the record.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch project.Patch) error {
	return r.client.update(ctx, repository.CollectionProjects, id, patch)
}

// Delete removes the record.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, repository.CollectionProjects, id)
}
