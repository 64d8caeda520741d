package aggregate

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"agency-console/internal/models"
	"agency-console/internal/timeutil"
)

// Summary holds the headline figures for one window. Revenue is contracted
// value (project budgets) while the other figures come from invoices and
// project dues; the two sides are not reconciled.
type Summary struct {
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	Collected           decimal.Decimal `json:"collected"`
	Overdue             decimal.Decimal `json:"overdue"`
	PendingFromInvoices decimal.Decimal `json:"pendingFromInvoices"`
	PendingFromProjects decimal.Decimal `json:"pendingFromProjects"`
	TotalPending        decimal.Decimal `json:"totalPending"`
}

// Summarize computes the headline figures for w. now is used only for the
// bucket date of projects with no dated activity.
func Summarize(invoices []models.Invoice, projects []models.Project, w Window, now time.Time) Summary {
	return summarize(invoices, projects, bucketDates(projects, invoices, now), w)
}

func summarize(invoices []models.Invoice, projects []models.Project, buckets []time.Time, w Window) Summary {
	s := Summary{
		TotalRevenue:        decimal.Zero,
		Collected:           decimal.Zero,
		Overdue:             decimal.Zero,
		PendingFromInvoices: decimal.Zero,
		PendingFromProjects: decimal.Zero,
	}

	for _, p := range projects {
		s.TotalRevenue = s.TotalRevenue.Add(p.Budget)
	}

	for _, inv := range invoices {
		if !w.Contains(inv.Date) {
			continue
		}
		switch inv.Status {
		case models.InvoicePaid:
			s.Collected = s.Collected.Add(inv.Amount)
		case models.InvoiceOverdue:
			s.Overdue = s.Overdue.Add(inv.Amount)
			s.PendingFromInvoices = s.PendingFromInvoices.Add(inv.Amount)
		case models.InvoicePending:
			s.PendingFromInvoices = s.PendingFromInvoices.Add(inv.Amount)
		}
	}

	for i, p := range projects {
		if w.Contains(buckets[i]) {
			s.PendingFromProjects = s.PendingFromProjects.Add(p.DueAmount)
		}
	}

	s.TotalPending = s.PendingFromInvoices.Add(s.PendingFromProjects)
	return s
}

func bucketDates(projects []models.Project, invoices []models.Invoice, now time.Time) []time.Time {
	out := make([]time.Time, len(projects))
	for i, p := range projects {
		out[i] = ResolveBucketDate(p, invoices, now)
	}
	return out
}

// CollectionRate is collected / revenue as a percentage with one decimal
// place, or zero when there is no revenue.
func CollectionRate(collected, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return collected.Div(revenue).Mul(decimal.NewFromInt(100)).Round(1)
}

type SeriesPoint struct {
	Label     string          `json:"label"`
	Collected decimal.Decimal `json:"collected"`
	Pending   decimal.Decimal `json:"pending"`
}

// MonthlySeries covers the twelve months of now's year.
func MonthlySeries(invoices []models.Invoice, projects []models.Project, now time.Time) []SeriesPoint {
	buckets := bucketDates(projects, invoices, now)
	year := timeutil.ToIST(now).Year()
	out := make([]SeriesPoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		s := summarize(invoices, projects, buckets, Month(year, m))
		out = append(out, SeriesPoint{Label: m.String()[:3], Collected: s.Collected, Pending: s.TotalPending})
	}
	return out
}

// YearlySeries covers now's year and the three before it.
func YearlySeries(invoices []models.Invoice, projects []models.Project, now time.Time) []SeriesPoint {
	buckets := bucketDates(projects, invoices, now)
	current := timeutil.ToIST(now).Year()
	out := make([]SeriesPoint, 0, 4)
	for y := current - 3; y <= current; y++ {
		s := summarize(invoices, projects, buckets, Year(y))
		out = append(out, SeriesPoint{Label: strconv.Itoa(y), Collected: s.Collected, Pending: s.TotalPending})
	}
	return out
}

type Slice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// PaymentStatusBreakdown returns the non-zero Collected/Pending/Overdue slices.
func PaymentStatusBreakdown(s Summary) []Slice {
	all := []Slice{
		{Name: "Collected", Value: s.Collected},
		{Name: "Pending", Value: s.TotalPending},
		{Name: "Overdue", Value: s.Overdue},
	}
	out := make([]Slice, 0, len(all))
	for _, sl := range all {
		if sl.Value.IsPositive() {
			out = append(out, sl)
		}
	}
	return out
}

// Inputs are the collections a dashboard is computed from. Nil slices are
// treated as empty.
type Inputs struct {
	Invoices   []models.Invoice
	Projects   []models.Project
	Clients    []models.Client
	Attendance []models.Attendance
}

type Dashboard struct {
	Summary          Summary             `json:"summary"`
	CollectionRate   decimal.Decimal     `json:"collectionRate"`
	ClientCount      int                 `json:"clientCount"`
	ActiveProjects   int                 `json:"activeProjects"`
	OverdueInvoices  int                 `json:"overdueInvoices"`
	Monthly          []SeriesPoint       `json:"monthly"`
	Yearly           []SeriesPoint       `json:"yearly"`
	PaymentStatus    []Slice             `json:"paymentStatus"`
	LatestAttendance []models.Attendance `json:"latestAttendance"`
}

// BuildDashboard is a pure function of its inputs and now.
func BuildDashboard(in Inputs, now time.Time) Dashboard {
	summary := Summarize(in.Invoices, in.Projects, AllTime(), now)

	d := Dashboard{
		Summary:          summary,
		CollectionRate:   CollectionRate(summary.Collected, summary.TotalRevenue),
		ClientCount:      len(in.Clients),
		Monthly:          MonthlySeries(in.Invoices, in.Projects, now),
		Yearly:           YearlySeries(in.Invoices, in.Projects, now),
		PaymentStatus:    PaymentStatusBreakdown(summary),
		LatestAttendance: LatestAttendance(in.Attendance, 5),
	}
	for _, p := range in.Projects {
		if p.Status.Active() {
			d.ActiveProjects++
		}
	}
	for _, inv := range in.Invoices {
		if inv.Status == models.InvoiceOverdue {
			d.OverdueInvoices++
		}
	}
	return d
}

// LatestAttendance returns up to n records, newest first. The input is not modified.
func LatestAttendance(records []models.Attendance, n int) []models.Attendance {
	sorted := append([]models.Attendance(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = []models.Attendance{}
	}
	return sorted
}

// PresentDays counts records marked present.
func PresentDays(records []models.Attendance) int {
	n := 0
	for _, r := range records {
		if r.Status == models.AttendancePresent {
			n++
		}
	}
	return n
}

// MarkedToday reports whether any record falls on now's IST date.
func MarkedToday(records []models.Attendance, now time.Time) bool {
	for _, r := range records {
		if !r.Date.IsZero() && timeutil.SameDay(r.Date, now) {
			return true
		}
	}
	return false
}
