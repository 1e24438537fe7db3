package store

import (
	"context"

	"github.com/existflow/clientpulse/internal/model"
)

const tableProjects = "projects"

// CreateProject inserts a project document
func (s *Store) CreateProject(ctx context.Context, v *model.Project) error {
	return insertDoc(ctx, s, tableProjects, projectMeta(v), strippedProject(v))
}

// GetProject returns the owner's project or ErrNotFound
func (s *Store) GetProject(ctx context.Context, ownerID, id string) (*model.Project, error) {
	return getDoc[model.Project](ctx, s, tableProjects, ownerID, id)
}

// ListProjects returns a page of the owner's projects and the total count
func (s *Store) ListProjects(ctx context.Context, ownerID string, page Page) ([]*model.Project, int, error) {
	return listDocs[model.Project](ctx, s, tableProjects, ownerID, page)
}

// UpdateProject replaces the stored document, returning ErrNotFound if it is gone.
// Every save moves v.UpdatedAt strictly forward.
func (s *Store) UpdateProject(ctx context.Context, v *model.Project) error {
	v.UpdatedAt = model.NextUpdate(v.UpdatedAt, s.now())
	return replaceDoc(ctx, s, tableProjects, projectMeta(v), strippedProject(v))
}

// DeleteProject removes a project; a missing project is not an error
func (s *Store) DeleteProject(ctx context.Context, ownerID, id string) error {
	return deleteDoc(ctx, s, tableProjects, ownerID, id)
}

func projectMeta(v *model.Project) docMeta {
	return docMeta{
		id:        v.ID,
		ownerID:   v.OwnerID,
		clientID:  v.ClientID,
		createdAt: v.CreatedAt,
		updatedAt: v.UpdatedAt,
	}
}

// strippedProject drops the resolved client snapshot, which is never stored
func strippedProject(v *model.Project) *model.Project {
	doc := *v
	doc.Client = nil
	return &doc
}
