package service

import (
	"context"

	"github.com/existflow/clientpulse/internal/logger"
	"github.com/existflow/clientpulse/internal/model"
	"github.com/existflow/clientpulse/internal/store"
)

// CreateProject validates and stores a new project
func (s *Service) CreateProject(ctx context.Context, ownerID string, in model.ProjectInput) (*model.Project, error) {
	p, err := model.NewProject(s.newID(), ownerID, in, s.now())
	if err != nil {
		return nil, err
	}
	client, err := s.requireClient(ctx, ownerID, p.ClientID)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateProject(ctx, p); err != nil {
		err = storeErr(err, "project")
		logFailure("create project", err, logger.F("owner", ownerID))
		return nil, err
	}
	p.Client = client

	logger.Info("Project created", logger.F("id", p.ID), logger.F("owner", ownerID))
	return p, nil
}

// GetProject returns a project with its client snapshot
func (s *Service) GetProject(ctx context.Context, ownerID, id string) (*model.Project, error) {
	p, err := s.store.GetProject(ctx, ownerID, id)
	if err != nil {
		return nil, storeErr(err, "project")
	}
	if err := s.attachProjectClients(ctx, ownerID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProjects returns a page of projects and the owner's total
func (s *Service) ListProjects(ctx context.Context, ownerID string, page store.Page) ([]*model.Project, int, error) {
	projects, total, err := s.store.ListProjects(ctx, ownerID, page)
	if err != nil {
		return nil, 0, storeErr(err, "project")
	}
	if err := s.attachProjectClients(ctx, ownerID, projects...); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// UpdateProject merges the patch into the stored project
func (s *Service) UpdateProject(ctx context.Context, ownerID, id string, patch model.ProjectPatch) (*model.Project, error) {
	p, err := s.store.GetProject(ctx, ownerID, id)
	if err != nil {
		return nil, storeErr(err, "project")
	}
	if clientID, ok := patch.ClientChanged(); ok && clientID != "" && clientID != p.ClientID {
		if _, err := s.requireClient(ctx, ownerID, clientID); err != nil {
			return nil, err
		}
	}
	if err := p.Apply(patch, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.UpdateProject(ctx, p); err != nil {
		err = storeErr(err, "project")
		logFailure("update project", err, logger.F("id", id))
		return nil, err
	}
	if err := s.attachProjectClients(ctx, ownerID, p); err != nil {
		return nil, err
	}

	logger.Debug("Project updated", logger.F("id", id), logger.F("updatedAt", p.UpdatedAt))
	return p, nil
}

// DeleteProject removes a project. Unknown ids succeed.
func (s *Service) DeleteProject(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteProject(ctx, ownerID, id); err != nil {
		return storeErr(err, "project")
	}
	return nil
}

func (s *Service) attachProjectClients(ctx context.Context, ownerID string, projects ...*model.Project) error {
	return resolveClients(ctx, s, ownerID, projects,
		func(p *model.Project) string { return p.ClientID },
		func(p *model.Project, c *model.Client) { p.Client = c },
	)
}
