package aggregate

import (
	"time"

	"agency-console/internal/models"
)

// ResolveBucketDate picks the date a project's outstanding due is reported
// under:
//  1. the latest dated invoice associated with the project (from the invoice
//     collection by project id, and from the project's embedded invoices);
//  2. otherwise the project's start date;
//  3. otherwise now.
func ResolveBucketDate(p models.Project, invoices []models.Invoice, now time.Time) time.Time {
	var latest time.Time
	consider := func(t time.Time) {
		if !t.IsZero() && t.After(latest) {
			latest = t
		}
	}

	for _, inv := range invoices {
		if inv.ProjectID != "" && inv.ProjectID == p.ID {
			consider(inv.Date)
		}
	}
	for _, inv := range p.Invoices {
		consider(inv.Date)
	}

	if !latest.IsZero() {
		return latest
	}
	if !p.StartDate.IsZero() {
		return p.StartDate
	}
	return now
}
