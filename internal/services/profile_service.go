package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"agency-console/internal/models"
	"agency-console/internal/repositories"
)

var ErrNoProfile = errors.New("profile access not supported for this role")

// Profile is the signed-in employee's or intern's own record.
type Profile struct {
	Kind     models.PersonKind `json:"kind"`
	Employee *models.Employee  `json:"employee,omitempty"`
	Intern   *models.Intern    `json:"intern,omitempty"`
}

func (p Profile) Name() string {
	switch p.Kind {
	case models.KindEmployee:
		return p.Employee.Name
	case models.KindIntern:
		return p.Intern.Name
	}
	return ""
}

func (p Profile) Salary() decimal.Decimal {
	switch p.Kind {
	case models.KindEmployee:
		return p.Employee.Salary
	case models.KindIntern:
		return p.Intern.Salary
	}
	return decimal.Zero
}

type ProfileService struct {
	Employees *repositories.EmployeeRepository
	Interns   *repositories.InternRepository
}

func NewProfileService(employees *repositories.EmployeeRepository, interns *repositories.InternRepository) *ProfileService {
	return &ProfileService{Employees: employees, Interns: interns}
}

// Me loads the profile for the user's role. Admins have none.
func (s *ProfileService) Me(ctx context.Context, user models.AuthUser) (Profile, error) {
	switch user.Role {
	case models.RoleEmployee:
		e, err := s.Employees.Me(ctx)
		if err != nil {
			return Profile{}, err
		}
		return Profile{Kind: models.KindEmployee, Employee: &e}, nil
	case models.RoleIntern:
		i, err := s.Interns.Me(ctx)
		if err != nil {
			return Profile{}, err
		}
		return Profile{Kind: models.KindIntern, Intern: &i}, nil
	}
	return Profile{}, ErrNoProfile
}
