package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "paid"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePending InvoiceStatus = "pending"
	InvoiceOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoicePaid, InvoicePartial, InvoicePending, InvoiceOverdue:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodUPI          PaymentMethod = "UPI"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCard         PaymentMethod = "Card"
	MethodCheque       PaymentMethod = "Cheque"
)

// DueItem is one project's outstanding amount carried onto an invoice.
type DueItem struct {
	ProjectName string          `json:"projectName"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is the adapted invoice. GrandTotal is a snapshot taken at creation:
// later changes to the client's dues never alter it.
type Invoice struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	ReferenceNo  string          `json:"referenceNo"`
	ClientID     string          `json:"clientId"`
	ClientName   string          `json:"clientName"`
	Company      string          `json:"company"`
	ProjectID    string          `json:"projectId"`
	ProjectName  string          `json:"projectName"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Total        decimal.Decimal `json:"total"`
	PreviousDue  decimal.Decimal `json:"previousDue"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	DueBreakdown []DueItem       `json:"dueBreakdown"`
	Status       InvoiceStatus   `json:"status"`
	Method       PaymentMethod   `json:"method"`
	Date         time.Time       `json:"date"`
}

// InvoiceRequest is the create/update body for /api/invoice
type InvoiceRequest struct {
	ClientID     string          `json:"clientId" validate:"required"`
	ProjectID    string          `json:"projectId" validate:"required"`
	ReferenceNo  string          `json:"referenceNo"`
	InvoiceNo    string          `json:"invoiceNo" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	PreviousDue  decimal.Decimal `json:"previousDue"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	DueBreakdown []DueItem       `json:"dueBreakdown,omitempty"`
	Description  string          `json:"description,omitempty"`
	Method       PaymentMethod   `json:"method" validate:"required,oneof=Cash UPI 'Bank Transfer' Card Cheque"`
	Date         string          `json:"date,omitempty"`
	Status       InvoiceStatus   `json:"status,omitempty" validate:"omitempty,oneof=paid partial pending overdue"`
}
