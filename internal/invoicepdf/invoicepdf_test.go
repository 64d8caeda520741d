package invoicepdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-console/internal/models"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestLines_BreakdownRows(t *testing.T) {
	inv := models.Invoice{
		ProjectName: "Website",
		Amount:      d(2000),
		PreviousDue: d(5000),
		DueBreakdown: []models.DueItem{
			{ProjectName: "App", Amount: d(3000)},
			{ProjectName: "SEO", Amount: d(2000)},
		},
	}
	lines := Lines(inv)
	require.Len(t, lines, 3)
	assert.Equal(t, "Website", lines[0].Description)
	assert.Equal(t, "Due of App", lines[1].Description)
	assert.Equal(t, "Due of SEO", lines[2].Description)
}

func TestLines_PreviousDueFallback(t *testing.T) {
	lines := Lines(models.Invoice{Amount: d(1000), PreviousDue: d(400)})
	require.Len(t, lines, 2)
	assert.Equal(t, "Project Service", lines[0].Description)
	assert.Equal(t, "Previous Outstanding Balance", lines[1].Description)
	assert.True(t, lines[1].Total().Equal(d(400)))

	lines = Lines(models.Invoice{Description: "Retainer", Amount: d(1000)})
	require.Len(t, lines, 1)
	assert.Equal(t, "Retainer", lines[0].Description)
}

func TestRender(t *testing.T) {
	inv := models.Invoice{
		Number:      "INV-7",
		ClientName:  "Acme",
		ProjectName: "Website",
		Amount:      d(2000),
		PreviousDue: d(500),
		Status:      models.InvoicePending,
		Date:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	out, err := Render(inv, "12 MG Road, Patna", Company{Name: "Webflora Technologies", Email: "hello@example.com"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "Invoice_INV-7.pdf", FileName(inv))
	assert.Equal(t, "Invoice_000.pdf", FileName(models.Invoice{}))
}
