package adapters

import (
	"github.com/shopspring/decimal"
)

// Wire schemas for the REST API. Identity fields are validated on decode;
// everything else is optional and defaulted by the Adapt* functions.

type ClientWire struct {
	ID            string              `json:"_id" validate:"required"`
	ClientName    string              `json:"clientName"`
	ContactNumber string              `json:"contactNumber"`
	Email         string              `json:"email"`
	Address       string              `json:"address"`
	ReferenceNo   string              `json:"referenceNo"`
	TotalDue      decimal.NullDecimal `json:"totalDue"`
	Status        string              `json:"status"`
	CreatedAt     string              `json:"createdAt"`
}

type DueItemWire struct {
	ProjectName string          `json:"projectName"`
	Amount      decimal.Decimal `json:"amount"`
}

type InvoiceWire struct {
	ID           string              `json:"_id" validate:"required"`
	ClientID     Ref                 `json:"clientId"`
	ProjectID    Ref                 `json:"projectId"`
	ReferenceNo  string              `json:"referenceNo"`
	InvoiceNo    string              `json:"invoiceNo"`
	Amount       decimal.Decimal     `json:"amount"`
	PreviousDue  decimal.Decimal     `json:"previousDue"`
	GrandTotal   decimal.NullDecimal `json:"grandTotal"`
	DueBreakdown []DueItemWire       `json:"dueBreakdown"`
	Description  string              `json:"description"`
	Method       string              `json:"method"`
	Date         string              `json:"date"`
	Status       string              `json:"status"`
}

type ProjectWire struct {
	ID           string          `json:"_id" validate:"required"`
	ProjectName  string          `json:"projectName"`
	Client       Ref             `json:"client"`
	Description  string          `json:"description"`
	TechStack    []string        `json:"techStack"`
	Status       string          `json:"status"`
	AssignedTeam []Ref           `json:"assignedTeam"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	DueAmount    decimal.Decimal `json:"dueAmount"`
	Invoices     []Ref           `json:"invoices"`
	CreatedAt    string          `json:"createdAt"`
}

type EmployeeWire struct {
	ID         string          `json:"_id" validate:"required"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	Salary     decimal.Decimal `json:"salary"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	Status     string          `json:"status"`
	CreatedAt  string          `json:"createdAt"`
}

type InternWire struct {
	ID         string          `json:"_id" validate:"required"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	Salary     decimal.Decimal `json:"salary"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	Duration   string          `json:"duration"`
	Status     string          `json:"status"`
	CreatedAt  string          `json:"createdAt"`
}

type CredentialsWire struct {
	AdminURL  string `json:"adminUrl"`
	AdminUser string `json:"adminUser"`
	AdminPass string `json:"adminPass"`
	DBURL     string `json:"dbUrl"`
	ServerIP  string `json:"serverIp"`
	FTPHost   string `json:"ftpHost"`
	FTPUser   string `json:"ftpUser"`
	FTPPass   string `json:"ftpPass"`
	GithubURL string `json:"githubUrl"`
}

type HandoverWire struct {
	ID            string           `json:"_id" validate:"required"`
	ProjectID     Ref              `json:"projectId"`
	AssigneeID    Ref              `json:"assigneeId"`
	AssigneeModel string           `json:"assigneeModel" validate:"required,oneof=employee intern"`
	HandoverDate  string           `json:"handoverDate"`
	Deadline      string           `json:"deadline"`
	Credentials   *CredentialsWire `json:"credentials"`
	Instructions  string           `json:"instructions"`
	Status        string           `json:"status"`
}

type SalaryWire struct {
	ID          string          `json:"_id" validate:"required"`
	PayeeID     Ref             `json:"payeeId"`
	PayeeModel  string          `json:"payeeModel" validate:"required,oneof=employee intern"`
	PayeeName   string          `json:"payeeName"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"paymentDate"`
	Month       string          `json:"month"`
	Year        int             `json:"year"`
	Remarks     string          `json:"remarks"`
}

type SalaryStatWire struct {
	Key struct {
		Year       int    `json:"year"`
		Month      string `json:"month"`
		PayeeModel string `json:"payeeModel" validate:"required,oneof=employee intern"`
	} `json:"_id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

type NoticeWire struct {
	ID           string `json:"_id" validate:"required"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Date         string `json:"date"`
	CreatedAt    string `json:"createdAt"`
	AudienceType string `json:"audienceType"`
	TargetID     Ref    `json:"targetId"`
	TargetModel  string `json:"targetModel"`
}

type CommunicationWire struct {
	ID          string `json:"_id" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AdminReply  string `json:"adminReply"`
	SenderName  string `json:"senderName"`
	CreatedBy   Ref    `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
}

type AttendanceWire struct {
	ID        string `json:"_id"`
	AltID     string `json:"id"`
	UserID    Ref    `json:"userId"`
	UserName  string `json:"userName"`
	UserModel string `json:"userModel"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status"`
	TimeIn    string `json:"timeIn"`
}

// AuthUserWire is the user object of a login response or a /me profile.
type AuthUserWire struct {
	ID    string `json:"id"`
	MgoID string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"required"`
	Role  string `json:"role"`
}
