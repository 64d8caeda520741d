package aggregate

import (
	"strings"

	"agency-console/internal/models"
)

// FilterInvoices keeps invoices whose number, client, project or description
// contains query, ignoring case. An empty query keeps everything.
func FilterInvoices(invoices []models.Invoice, query string) []models.Invoice {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return invoices
	}
	out := []models.Invoice{}
	for _, inv := range invoices {
		for _, field := range []string{inv.Number, inv.ClientName, inv.ProjectName, inv.Description} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, inv)
				break
			}
		}
	}
	return out
}

// InvoicesForProject returns invoices from the collection that belong to projectID.
func InvoicesForProject(invoices []models.Invoice, projectID string) []models.Invoice {
	out := []models.Invoice{}
	for _, inv := range invoices {
		if inv.ProjectID == projectID {
			out = append(out, inv)
		}
	}
	return out
}
