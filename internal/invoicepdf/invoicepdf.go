package invoicepdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"

	"agency-console/internal/aggregate"
	"agency-console/internal/models"
	"agency-console/internal/timeutil"
)

// Company is the issuer printed in the header.
type Company struct {
	Name    string
	Tagline string
	Address string
	Email   string
	Phone   string
	Website string
}

// Line is one row of the items table.
type Line struct {
	Description string
	Qty         int
	UnitPrice   decimal.Decimal
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Lines builds the items table: the project line, then one line per carried
// due. Without a breakdown a positive previous due becomes a single line.
func Lines(inv models.Invoice) []Line {
	desc := inv.ProjectName
	if desc == "" {
		desc = inv.Description
	}
	if desc == "" {
		desc = "Project Service"
	}
	lines := []Line{{Description: desc, Qty: 1, UnitPrice: inv.Amount}}

	if len(inv.DueBreakdown) > 0 {
		for _, d := range inv.DueBreakdown {
			lines = append(lines, Line{Description: "Due of " + d.ProjectName, Qty: 1, UnitPrice: d.Amount})
		}
		return lines
	}
	if inv.PreviousDue.IsPositive() {
		lines = append(lines, Line{Description: "Previous Outstanding Balance", Qty: 1, UnitPrice: inv.PreviousDue})
	}
	return lines
}

// FileName is the download name of an invoice document.
func FileName(inv models.Invoice) string {
	no := inv.Number
	if no == "" {
		no = "000"
	}
	return fmt.Sprintf("Invoice_%s.pdf", strings.ReplaceAll(no, "/", "-"))
}

func rs(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}

// Render draws the invoice on one A4 page. address is the client's billing
// address and may be empty.
func Render(inv models.Invoice, address string, co Company) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 15, 20)
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(100, 9, co.Name, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(255, 95, 31)
	pdf.CellFormat(70, 9, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	for _, s := range []string{co.Tagline, co.Address, co.Email, co.Phone, co.Website} {
		if s != "" {
			pdf.CellFormat(170, 5, s, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)
	pdf.SetDrawColor(255, 95, 31)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(6)

	// Bill to / details
	top := pdf.GetY()
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(255, 95, 31)
	pdf.CellFormat(100, 6, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetTextColor(30, 30, 30)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(100, 6, inv.ClientName, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if inv.ProjectName != "" {
		pdf.CellFormat(100, 5, "Project: "+inv.ProjectName, "", 1, "L", false, 0, "")
	}
	if address != "" {
		pdf.MultiCell(100, 5, address, "", "L", false)
	}
	billEnd := pdf.GetY()

	date := "-"
	if !inv.Date.IsZero() {
		date = timeutil.FormatIST(inv.Date, timeutil.DisplayLayout)
	}
	pdf.SetXY(120, top)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(30, 6, "Invoice No:", "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, inv.Number, "", 1, "R", false, 0, "")
	pdf.SetX(120)
	pdf.CellFormat(30, 6, "Date:", "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, date, "", 1, "R", false, 0, "")
	pdf.SetX(120)
	pdf.CellFormat(30, 6, "Status:", "", 0, "L", false, 0, "")
	if inv.Status == models.InvoicePaid {
		pdf.SetTextColor(22, 163, 74)
	} else {
		pdf.SetTextColor(220, 38, 38)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, strings.ToUpper(string(inv.Status)), "", 1, "R", false, 0, "")
	pdf.SetTextColor(30, 30, 30)

	if billEnd > pdf.GetY() {
		pdf.SetY(billEnd)
	}
	pdf.Ln(8)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(255, 95, 31)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(12, 8, "Sl", "1", 0, "C", true, 0, "")
	pdf.CellFormat(78, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(15, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(33, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetDrawColor(220, 220, 220)
	for i, l := range Lines(inv) {
		desc := l.Description
		if len(desc) > 45 {
			desc = desc[:42] + "..."
		}
		fill := i%2 == 1
		pdf.SetFillColor(248, 248, 248)
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(78, 7, desc, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", l.Qty), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(32, 7, rs(l.UnitPrice), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(33, 7, rs(l.Total()), "1", 1, "R", fill, 0, "")
	}
	pdf.Ln(6)

	// Summary
	sum := aggregate.Settle(inv)
	row := func(label, value string) {
		pdf.SetX(120)
		pdf.CellFormat(35, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, value, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "", 10)
	row("Total:", rs(sum.Total))
	row("Paid:", rs(sum.Paid))
	pdf.SetFont("Arial", "B", 11)
	if sum.Due.IsPositive() {
		pdf.SetTextColor(220, 38, 38)
	}
	row("Due:", rs(sum.Due))
	pdf.SetTextColor(30, 30, 30)

	// Footer
	pdf.SetDrawColor(240, 240, 240)
	pdf.Line(20, 265, 190, 265)
	pdf.SetY(268)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(170, 5, "This is a computer-generated document. No signature is required.", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(255, 95, 31)
	pdf.CellFormat(170, 5, fmt.Sprintf("Thank you for partnering with %s!", co.Name), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}
	return buf.Bytes(), nil
}
