package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectNew        ProjectStatus = "New"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectOnHold     ProjectStatus = "On Hold"
	ProjectCompleted  ProjectStatus = "Completed"
)

// Key normalizes a status for presentation: lower case with hyphens, so
// "On Hold" and "on-hold" share a badge. The presentation set also knows
// planning and review, which the API may send for legacy projects.
func (s ProjectStatus) Key() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(s))), " ", "-")
}

// Progress is the coarse completion percentage shown on project cards.
func (s ProjectStatus) Progress() int {
	switch s {
	case ProjectCompleted:
		return 100
	case ProjectInProgress:
		return 50
	}
	return 0
}

// Active reports whether the project counts toward active projects on the dashboard.
func (s ProjectStatus) Active() bool {
	return s == ProjectInProgress || s.Key() == "active"
}

type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ClientID    string          `json:"clientId"`
	ClientName  string          `json:"clientName"`
	Status      ProjectStatus   `json:"status"`
	StatusKey   string          `json:"statusKey"`
	Budget      decimal.Decimal `json:"budget"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	DueAmount   decimal.Decimal `json:"dueAmount"`
	Invoices    []Invoice       `json:"invoices"`
	StartDate   time.Time       `json:"startDate"`
	Deadline    time.Time       `json:"deadline"`
	Team        []string        `json:"team"`
	TechStack   []string        `json:"techStack"`
	Progress    int             `json:"progress"`
	Description string          `json:"description"`
}

// ProjectRequest is the create/update body for /api/project
type ProjectRequest struct {
	ProjectName  string          `json:"projectName" validate:"required"`
	Client       string          `json:"client" validate:"required"`
	Description  string          `json:"description,omitempty"`
	TechStack    []string        `json:"techStack,omitempty"`
	Status       ProjectStatus   `json:"status,omitempty" validate:"omitempty,oneof='New' 'In Progress' 'On Hold' 'Completed'"`
	AssignedTeam []string        `json:"assignedTeam,omitempty"`
	StartDate    string          `json:"startDate,omitempty"`
	EndDate      string          `json:"endDate,omitempty"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}
