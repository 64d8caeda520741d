package services

import (
	"context"

	"agency-console/internal/models"
	"agency-console/internal/repositories"
)

type NoticeService struct {
	Repo   *repositories.NoticeRepository
	Events Invalidator
}

func NewNoticeService(repo *repositories.NoticeRepository, events Invalidator) *NoticeService {
	if events == nil {
		events = nopInvalidator{}
	}
	return &NoticeService{Repo: repo, Events: events}
}

func (s *NoticeService) List(ctx context.Context) ([]models.Notice, error) {
	return s.Repo.List(ctx)
}

// Create posts a notice. A missing audience means everyone.
func (s *NoticeService) Create(ctx context.Context, req *models.NoticeRequest) error {
	if req.AudienceType == "" {
		req.AudienceType = models.AudienceAll
	}
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.AudienceType != models.AudienceIndividual {
		req.TargetID, req.TargetModel = "", ""
	} else if req.TargetModel != models.KindEmployee && req.TargetModel != models.KindIntern {
		return fieldError("targetModel", "must be one of employee intern")
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionNotices)
	return nil
}

func (s *NoticeService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionNotices)
	return nil
}

type CommunicationService struct {
	Repo   *repositories.CommunicationRepository
	Events Invalidator
}

func NewCommunicationService(repo *repositories.CommunicationRepository, events Invalidator) *CommunicationService {
	if events == nil {
		events = nopInvalidator{}
	}
	return &CommunicationService{Repo: repo, Events: events}
}

func (s *CommunicationService) List(ctx context.Context) ([]models.Communication, error) {
	return s.Repo.List(ctx)
}

func (s *CommunicationService) Create(ctx context.Context, req *models.CommunicationRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionCommunications)
	return nil
}

// Reply answers a communication. The status sent along is derived from the
// reply text unless the form chose one.
func (s *CommunicationService) Reply(ctx context.Context, id string, req *models.ReplyRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.Status == "" {
		req.Status = string(models.ResolutionFor(req.Reply))
	}
	if err := s.Repo.Reply(ctx, id, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionCommunications)
	return nil
}

func (s *CommunicationService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionCommunications)
	return nil
}
