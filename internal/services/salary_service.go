package services

import (
	"context"

	"agency-console/internal/aggregate"
	"agency-console/internal/models"
	"agency-console/internal/repositories"
)

type SalaryService struct {
	Repo   *repositories.SalaryRepository
	Events Invalidator
}

func NewSalaryService(repo *repositories.SalaryRepository, events Invalidator) *SalaryService {
	if events == nil {
		events = nopInvalidator{}
	}
	return &SalaryService{Repo: repo, Events: events}
}

// AddPayment appends to the ledger. Payments are never edited or removed.
func (s *SalaryService) AddPayment(ctx context.Context, req *models.SalaryRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if !req.Amount.IsPositive() {
		return fieldError("amount", "must be greater than zero")
	}
	if err := s.Repo.Add(ctx, req); err != nil {
		return err
	}
	events := []string{CollectionSalaries}
	switch req.PayeeModel {
	case models.KindEmployee:
		events = append(events, CollectionEmployees)
	case models.KindIntern:
		events = append(events, CollectionInterns)
	}
	s.Events.Invalidate(events...)
	return nil
}

func (s *SalaryService) History(ctx context.Context, payeeID string) ([]models.SalaryPayment, error) {
	return s.Repo.History(ctx, payeeID)
}

func (s *SalaryService) All(ctx context.Context) ([]models.SalaryPayment, error) {
	return s.Repo.All(ctx)
}

// Overview is the salaries screen: the ledger plus monthly and yearly totals.
type Overview struct {
	Payments []models.SalaryPayment  `json:"payments"`
	Monthly  []aggregate.SalaryPoint `json:"monthly"`
	Yearly   []aggregate.SalaryPoint `json:"yearly"`
}

func (s *SalaryService) Overview(ctx context.Context) (Overview, error) {
	payments, err := s.Repo.All(ctx)
	if err != nil {
		return Overview{}, err
	}
	stats, err := s.Repo.Stats(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Payments: payments,
		Monthly:  aggregate.MonthlySalarySeries(stats),
		Yearly:   aggregate.YearlySalarySeries(stats),
	}, nil
}
