package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultDepartment = "General"

type Employee struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	Salary     decimal.Decimal `json:"salary"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	Status     string          `json:"status"`
	JoinDate   time.Time       `json:"joinDate"`
	Initials   string          `json:"initials"`
}

func (e Employee) Ref() EmployeeRef {
	return EmployeeRef{ID: e.ID, Name: e.Name, Email: e.Email, Role: e.Role}
}

type Intern struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	Duration   string          `json:"duration"`
	Salary     decimal.Decimal `json:"salary"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	Status     string          `json:"status"`
	JoinDate   time.Time       `json:"joinDate"`
	Initials   string          `json:"initials"`
}

func (i Intern) Ref() InternRef {
	return InternRef{ID: i.ID, Name: i.Name, Email: i.Email, Duration: i.Duration}
}

// StaffRequest is the create/update body for employees and interns.
// Password is only required on create; the service enforces that.
type StaffRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     string          `json:"role,omitempty"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
	Duration string          `json:"duration,omitempty"`
	Salary   decimal.Decimal `json:"salary"`
}
