package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"agency-console/internal/aggregate"
	"agency-console/internal/models"
	"agency-console/internal/timeutil"
)

const (
	InvoiceSheet = "Invoices"
	SalarySheet  = "Salaries"
)

// Invoices writes one row per invoice with its settlement figures.
func Invoices(invoices []models.Invoice) (*bytes.Buffer, error) {
	headers := []string{
		"Invoice No", "Date", "Client", "Project", "Description", "Method", "Status",
		"Amount", "Previous Due", "Grand Total", "Paid", "Due",
	}
	rows := make([][]interface{}, 0, len(invoices))
	for _, inv := range invoices {
		s := aggregate.Settle(inv)
		rows = append(rows, []interface{}{
			inv.Number,
			date(inv),
			inv.ClientName,
			inv.ProjectName,
			inv.Description,
			string(inv.Method),
			string(inv.Status),
			inv.Amount.InexactFloat64(),
			inv.PreviousDue.InexactFloat64(),
			inv.GrandTotal.InexactFloat64(),
			s.Paid.InexactFloat64(),
			s.Due.InexactFloat64(),
		})
	}
	return workbook(InvoiceSheet, headers, rows)
}

// Salaries writes salary history. Payments without a resolvable payee are
// kept with a blank name.
func Salaries(payments []models.SalaryPayment) (*bytes.Buffer, error) {
	headers := []string{"Payee", "Type", "Month", "Year", "Amount", "Paid On", "Remarks"}
	rows := make([][]interface{}, 0, len(payments))
	for _, p := range payments {
		name, kind := "", ""
		if p.Payee != nil {
			name, kind = p.Payee.DisplayName(), string(p.Payee.Kind())
		}
		paidOn := ""
		if !p.PaymentDate.IsZero() {
			paidOn = timeutil.FormatIST(p.PaymentDate, timeutil.DateLayout)
		}
		rows = append(rows, []interface{}{name, kind, p.Month, p.Year, p.Amount.InexactFloat64(), paidOn, p.Remarks})
	}
	return workbook(SalarySheet, headers, rows)
}

func date(inv models.Invoice) string {
	if inv.Date.IsZero() {
		return ""
	}
	return timeutil.FormatIST(inv.Date, timeutil.DateLayout)
}

func workbook(sheet string, headers []string, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(sheet); err == nil {
		f.SetActiveSheet(index)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FF5F1F"},
			Pattern: 1,
		},
	})
	if err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, headerStyle)
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", r+2, err)
		}
	}

	last, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, "A", last, 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf, nil
}
