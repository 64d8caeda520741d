package services

import (
	"context"

	"agency-console/internal/models"
	"agency-console/internal/repositories"
)

type HandoverService struct {
	Repo   *repositories.HandoverRepository
	Events Invalidator
}

func NewHandoverService(repo *repositories.HandoverRepository, events Invalidator) *HandoverService {
	if events == nil {
		events = nopInvalidator{}
	}
	return &HandoverService{Repo: repo, Events: events}
}

func (s *HandoverService) List(ctx context.Context) ([]models.Handover, error) {
	return s.Repo.List(ctx)
}

// ListFor keeps the handovers assigned to one person.
func (s *HandoverService) ListFor(ctx context.Context, personID string) ([]models.Handover, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Handover{}
	for _, h := range all {
		if h.Assignee != nil && h.Assignee.PersonID() == personID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *HandoverService) Get(ctx context.Context, id string) (models.Handover, error) {
	return s.Repo.Get(ctx, id)
}

func (s *HandoverService) Create(ctx context.Context, req *models.HandoverRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionHandovers)
	return nil
}

func (s *HandoverService) Update(ctx context.Context, id string, req *models.HandoverRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, id, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionHandovers)
	return nil
}

func (s *HandoverService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionHandovers)
	return nil
}
