package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientProspect ClientStatus = "prospect"
)

type Client struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Company     string          `json:"company"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	ReferenceNo string          `json:"referenceNo"`
	TotalDue    decimal.Decimal `json:"totalDue"`
	// DueReported is false when the API did not send totalDue for this client.
	DueReported bool         `json:"-"`
	Status      ClientStatus `json:"status"`
	JoinDate    time.Time    `json:"joinDate"`
	Initials    string       `json:"initials"`
}

// ClientRequest is the create/update body for /api/client
type ClientRequest struct {
	ClientName    string `json:"clientName" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address"`
	ReferenceNo   string `json:"referenceNo"`
}
