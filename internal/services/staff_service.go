package services

import (
	"context"

	"agency-console/internal/models"
	"agency-console/internal/repositories"
)

type EmployeeService struct {
	Repo   *repositories.EmployeeRepository
	Events Invalidator
}

func NewEmployeeService(repo *repositories.EmployeeRepository, events Invalidator) *EmployeeService {
	if events == nil {
		events = nopInvalidator{}
	}
	return &EmployeeService{Repo: repo, Events: events}
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.Repo.List(ctx)
}

// Create requires a password; updates may leave it empty to keep the current one.
func (s *EmployeeService) Create(ctx context.Context, req *models.StaffRequest) error {
	if err := checkStaff(req, true); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionEmployees)
	return nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, req *models.StaffRequest) error {
	if err := checkStaff(req, false); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, id, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionEmployees)
	return nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionEmployees, CollectionHandovers, CollectionSalaries)
	return nil
}

type InternService struct {
	Repo   *repositories.InternRepository
	Events Invalidator
}

func NewInternService(repo *repositories.InternRepository, events Invalidator) *InternService {
	if events == nil {
		events = nopInvalidator{}
	}
	return &InternService{Repo: repo, Events: events}
}

func (s *InternService) List(ctx context.Context) ([]models.Intern, error) {
	return s.Repo.List(ctx)
}

func (s *InternService) Create(ctx context.Context, req *models.StaffRequest) error {
	if err := checkStaff(req, true); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionInterns)
	return nil
}

func (s *InternService) Update(ctx context.Context, id string, req *models.StaffRequest) error {
	if err := checkStaff(req, false); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, id, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionInterns)
	return nil
}

func (s *InternService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionInterns, CollectionHandovers, CollectionSalaries)
	return nil
}

func checkStaff(req *models.StaffRequest, creating bool) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if creating && req.Password == "" {
		return fieldError("password", "is required")
	}
	if req.Salary.IsNegative() {
		return fieldError("salary", "must not be negative")
	}
	return nil
}
