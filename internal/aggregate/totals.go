package aggregate

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"agency-console/internal/models"
)

type Totals struct {
	Total       decimal.Decimal `json:"total"`
	PreviousDue decimal.Decimal `json:"previousDue"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
}

// ComputeTotals derives an invoice's totals. Total is the amount; the grand
// total adds the carried-forward due.
func ComputeTotals(amount, previousDue decimal.Decimal) Totals {
	return Totals{
		Total:       amount,
		PreviousDue: previousDue,
		GrandTotal:  amount.Add(previousDue),
	}
}

// ClientDue is the client's outstanding balance. When the API does not report
// one it is the sum of the client's project dues.
func ClientDue(c models.Client, projects []models.Project) decimal.Decimal {
	if c.DueReported {
		return c.TotalDue
	}
	sum := decimal.Zero
	for _, p := range projects {
		if p.ClientID == c.ID && p.DueAmount.IsPositive() {
			sum = sum.Add(p.DueAmount)
		}
	}
	return sum
}

// DueBreakdownFor lists the client's projects that still have a due.
func DueBreakdownFor(clientID string, projects []models.Project) []models.DueItem {
	out := []models.DueItem{}
	for _, p := range projects {
		if p.ClientID == clientID && p.DueAmount.IsPositive() {
			out = append(out, models.DueItem{ProjectName: p.Name, Amount: p.DueAmount})
		}
	}
	return out
}

// Draft is an invoice being composed. The previous due is captured once, when
// a client is selected, and is not recomputed when the amount changes or the
// client's balance moves afterwards.
type Draft struct {
	ClientID    string
	ProjectID   string
	Amount      decimal.Decimal
	previousDue decimal.Decimal
	breakdown   []models.DueItem
}

// SelectClient captures the client's current due. Re-selecting the same
// client keeps the existing snapshot.
func (d *Draft) SelectClient(c models.Client, projects []models.Project) {
	if d.ClientID == c.ID {
		return
	}
	d.ClientID = c.ID
	d.ProjectID = ""
	d.previousDue = ClientDue(c, projects)
	d.breakdown = DueBreakdownFor(c.ID, projects)
}

func (d *Draft) SetAmount(amount decimal.Decimal) {
	d.Amount = amount
}

func (d *Draft) Totals() Totals {
	return ComputeTotals(d.Amount, d.previousDue)
}

func (d *Draft) DueBreakdown() []models.DueItem {
	return append([]models.DueItem(nil), d.breakdown...)
}

// Apply copies the draft's client, project, amount and snapshot onto req.
func (d *Draft) Apply(req *models.InvoiceRequest) {
	t := d.Totals()
	req.ClientID = d.ClientID
	if d.ProjectID != "" {
		req.ProjectID = d.ProjectID
	}
	req.Amount = d.Amount
	req.PreviousDue = t.PreviousDue
	req.GrandTotal = t.GrandTotal
	req.DueBreakdown = d.DueBreakdown()
}

var ErrInvalidAmount = errors.New("amount must be greater than zero")

// BudgetExceededError rejects an invoice larger than its project's remaining budget.
type BudgetExceededError struct {
	ProjectName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("This invoice amount exceeds the remaining project budget (₹%s).", e.Available.StringFixed(2))
}

// BudgetAvailable is the amount that may still be invoiced against p. When
// editing an invoice that already belongs to p, its original amount is
// returned to the pool.
func BudgetAvailable(p models.Project, original *models.Invoice) decimal.Decimal {
	available := p.DueAmount
	if original != nil && original.ProjectID == p.ID {
		available = available.Add(original.Amount)
	}
	return available
}

// CheckBudget validates amount against the project's remaining budget before
// anything is sent. An unknown project is not checked here; the API decides.
func CheckBudget(amount decimal.Decimal, projectID string, projects []models.Project, original *models.Invoice) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	for _, p := range projects {
		if p.ID != projectID {
			continue
		}
		available := BudgetAvailable(p, original)
		if amount.GreaterThan(available) {
			return &BudgetExceededError{ProjectName: p.Name, Available: available, Requested: amount}
		}
		return nil
	}
	return nil
}

// Settlement is how much of an invoice has been settled. The console records
// no partial payments, so Paid is the invoice amount when the invoice is
// marked paid and zero otherwise.
type Settlement struct {
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
	Due   decimal.Decimal `json:"due"`
}

func Settle(inv models.Invoice) Settlement {
	total := inv.Amount.Add(inv.PreviousDue)
	paid := decimal.Zero
	if inv.Status == models.InvoicePaid {
		paid = inv.Amount
	}
	return Settlement{Total: total, Paid: paid, Due: total.Sub(paid)}
}
