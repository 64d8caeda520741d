package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agency-console/internal/models"
)

func readRows(t *testing.T, buf *bytes.Buffer, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{sheet}, f.GetSheetList())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestInvoices(t *testing.T) {
	buf, err := Invoices([]models.Invoice{{
		Number:      "INV-1",
		ClientName:  "Acme",
		ProjectName: "Website",
		Amount:      decimal.NewFromInt(2000),
		PreviousDue: decimal.NewFromInt(5000),
		GrandTotal:  decimal.NewFromInt(7000),
		Status:      models.InvoicePaid,
		Method:      models.MethodUPI,
		Date:        time.Date(2025, 3, 31, 20, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	rows := readRows(t, buf, InvoiceSheet)
	require.Len(t, rows, 2)
	assert.Equal(t, "Invoice No", rows[0][0])
	assert.Equal(t, "INV-1", rows[1][0])
	assert.Equal(t, "2025-04-01", rows[1][1])
	assert.Equal(t, "7000", rows[1][9])
	assert.Equal(t, "2000", rows[1][10])
	assert.Equal(t, "5000", rows[1][11])
}

func TestSalaries(t *testing.T) {
	buf, err := Salaries([]models.SalaryPayment{
		{Payee: models.InternRef{ID: "i1", Name: "Ravi"}, Amount: decimal.NewFromInt(8000), Month: "March", Year: 2025},
		{Amount: decimal.NewFromInt(100), Month: "April", Year: 2025},
	})
	require.NoError(t, err)

	rows := readRows(t, buf, SalarySheet)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Ravi", "intern", "March", "2025", "8000"}, rows[1][:5])
	assert.Equal(t, "", rows[2][0])
}

func TestEmptyExport(t *testing.T) {
	buf, err := Invoices(nil)
	require.NoError(t, err)
	assert.Len(t, readRows(t, buf, InvoiceSheet), 1)
}
