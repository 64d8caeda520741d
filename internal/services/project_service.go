package services

import (
	"context"

	"agency-console/internal/models"
	"agency-console/internal/repositories"
)

type ProjectService struct {
	Repo        *repositories.ProjectRepository
	Collections *Collections
}

func NewProjectService(repo *repositories.ProjectRepository, collections *Collections) *ProjectService {
	return &ProjectService{Repo: repo, Collections: collections}
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.Collections.Projects.Refresh(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id string) (models.Project, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, req *models.ProjectRequest) error {
	if err := s.check(req); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return err
	}
	s.Collections.Invalidate(CollectionProjects, CollectionClients)
	return nil
}

func (s *ProjectService) Update(ctx context.Context, id string, req *models.ProjectRequest) error {
	if err := s.check(req); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, id, req); err != nil {
		return err
	}
	s.Collections.Invalidate(CollectionProjects, CollectionClients, CollectionInvoices)
	return nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Collections.Invalidate(CollectionProjects, CollectionClients, CollectionInvoices)
	return nil
}

func (s *ProjectService) check(req *models.ProjectRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.TotalAmount.IsNegative() {
		return fieldError("totalAmount", "must not be negative")
	}
	return nil
}
