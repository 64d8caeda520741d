package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryPayment is append-only: the API exposes no update or delete.
type SalaryPayment struct {
	ID          string          `json:"id"`
	Payee       Person          `json:"payee"`
	Amount      decimal.Decimal `json:"amount"`
	Month       string          `json:"month"`
	Year        int             `json:"year"`
	PaymentDate time.Time       `json:"paymentDate"`
	Remarks     string          `json:"remarks"`
}

type SalaryStat struct {
	Year        int             `json:"year"`
	Month       string          `json:"month"`
	PayeeKind   PersonKind      `json:"payeeKind"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

type SalaryRequest struct {
	PayeeID     string          `json:"payeeId" validate:"required"`
	PayeeModel  PersonKind      `json:"payeeModel" validate:"required,oneof=employee intern"`
	Amount      decimal.Decimal `json:"amount"`
	Month       string          `json:"month" validate:"required"`
	Year        int             `json:"year" validate:"required,min=2000,max=2100"`
	Remarks     string          `json:"remarks,omitempty"`
	PaymentDate string          `json:"paymentDate,omitempty"`
}
