package models

import "time"

type HandoverStatus string

// Any status may follow any other.
const (
	HandoverInProgress HandoverStatus = "In Progress"
	HandoverHandedOver HandoverStatus = "Handed Over"
	HandoverCompleted  HandoverStatus = "Completed"
	HandoverRevoked    HandoverStatus = "Revoked"
)

type Credentials struct {
	AdminURL  string `json:"adminUrl,omitempty"`
	AdminUser string `json:"adminUser,omitempty"`
	AdminPass string `json:"adminPass,omitempty"`
	DBURL     string `json:"dbUrl,omitempty"`
	ServerIP  string `json:"serverIp,omitempty"`
	FTPHost   string `json:"ftpHost,omitempty"`
	FTPUser   string `json:"ftpUser,omitempty"`
	FTPPass   string `json:"ftpPass,omitempty"`
	GithubURL string `json:"githubUrl,omitempty"`
}

type Handover struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"projectId"`
	ProjectName  string         `json:"projectName"`
	Assignee     Person         `json:"assignee"`
	HandoverDate time.Time      `json:"handoverDate"`
	Deadline     time.Time      `json:"deadline"`
	Credentials  Credentials    `json:"credentials"`
	Instructions string         `json:"instructions"`
	Status       HandoverStatus `json:"status"`
}

type HandoverRequest struct {
	ProjectID     string         `json:"projectId" validate:"required"`
	AssigneeID    string         `json:"assigneeId" validate:"required"`
	AssigneeModel PersonKind     `json:"assigneeModel" validate:"required,oneof=employee intern"`
	HandoverDate  string         `json:"handoverDate,omitempty"`
	Deadline      string         `json:"deadline,omitempty"`
	Credentials   *Credentials   `json:"credentials,omitempty"`
	Instructions  string         `json:"instructions,omitempty"`
	Status        HandoverStatus `json:"status,omitempty" validate:"omitempty,oneof='In Progress' 'Handed Over' 'Completed' 'Revoked'"`
}
