package aggregate

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-console/internal/models"
	"agency-console/internal/timeutil"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, timeutil.IST)
}

var now = day(2025, time.June, 15)

func TestResolveBucketDate_Tiers(t *testing.T) {
	start := day(2025, time.March, 1)

	t.Run("latest invoice date wins", func(t *testing.T) {
		p := models.Project{ID: "p1", StartDate: start, Invoices: []models.Invoice{{Date: day(2025, time.April, 2)}}}
		invoices := []models.Invoice{
			{ProjectID: "p1", Date: day(2025, time.May, 20)},
			{ProjectID: "p2", Date: day(2025, time.June, 1)},
			{ProjectID: "p1"},
		}
		assert.Equal(t, day(2025, time.May, 20), ResolveBucketDate(p, invoices, now))
	})

	t.Run("embedded invoices count", func(t *testing.T) {
		p := models.Project{ID: "p1", StartDate: start, Invoices: []models.Invoice{{Date: day(2025, time.April, 2)}}}
		assert.Equal(t, day(2025, time.April, 2), ResolveBucketDate(p, nil, now))
	})

	t.Run("start date when no invoices", func(t *testing.T) {
		p := models.Project{ID: "p1", StartDate: start}
		assert.Equal(t, start, ResolveBucketDate(p, nil, now))
	})

	t.Run("undated invoices fall through to start date", func(t *testing.T) {
		p := models.Project{ID: "p1", StartDate: start}
		assert.Equal(t, start, ResolveBucketDate(p, []models.Invoice{{ProjectID: "p1"}}, now))
	})

	t.Run("now when nothing is dated", func(t *testing.T) {
		assert.Equal(t, now, ResolveBucketDate(models.Project{ID: "p1"}, nil, now))
	})
}

func TestMonthlySeries_StartDateFallback(t *testing.T) {
	projects := []models.Project{{
		ID:        "p1",
		Budget:    dec(5000),
		DueAmount: dec(5000),
		StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, timeutil.IST),
	}}

	series := MonthlySeries(nil, projects, now)
	require.Len(t, series, 12)
	for i, point := range series {
		if time.Month(i+1) == time.March {
			assert.Equal(t, "Mar", point.Label)
			assert.True(t, point.Pending.Equal(dec(5000)), "march pending = %s", point.Pending)
			continue
		}
		assert.True(t, point.Pending.IsZero(), "%s pending = %s", point.Label, point.Pending)
	}
}

func TestMonthlySeries_UsesISTCalendar(t *testing.T) {
	// 31 Jan 20:00 UTC is 1 Feb in IST.
	invoices := []models.Invoice{{
		Amount: dec(100),
		Status: models.InvoicePaid,
		Date:   time.Date(2025, time.January, 31, 20, 0, 0, 0, time.UTC),
	}}
	series := MonthlySeries(invoices, nil, now)
	assert.True(t, series[0].Collected.IsZero())
	assert.True(t, series[1].Collected.Equal(dec(100)))
}

func TestYearlySeries_FourYears(t *testing.T) {
	invoices := []models.Invoice{
		{Amount: dec(100), Status: models.InvoicePaid, Date: day(2022, time.May, 1)},
		{Amount: dec(200), Status: models.InvoicePending, Date: day(2024, time.May, 1)},
		{Amount: dec(400), Status: models.InvoicePaid, Date: day(2021, time.May, 1)},
	}
	series := YearlySeries(invoices, nil, now)
	require.Len(t, series, 4)
	assert.Equal(t, []string{"2022", "2023", "2024", "2025"}, []string{series[0].Label, series[1].Label, series[2].Label, series[3].Label})
	assert.True(t, series[0].Collected.Equal(dec(100)))
	assert.True(t, series[2].Pending.Equal(dec(200)))
}

func fixture() Inputs {
	return Inputs{
		Clients: []models.Client{{ID: "c1"}, {ID: "c2"}},
		Projects: []models.Project{
			{ID: "p1", ClientID: "c1", Budget: dec(20000), DueAmount: dec(10000), Status: models.ProjectInProgress, StartDate: day(2025, time.January, 5)},
			{ID: "p2", ClientID: "c2", Budget: dec(5000), DueAmount: dec(0), Status: models.ProjectCompleted},
			{ID: "p3", ClientID: "c2", Budget: dec(5000), DueAmount: dec(5000), Status: "active", StartDate: day(2025, time.March, 1)},
		},
		Invoices: []models.Invoice{
			{ID: "i1", ProjectID: "p1", Amount: dec(6000), Status: models.InvoicePaid, Date: day(2025, time.February, 10)},
			{ID: "i2", ProjectID: "p1", Amount: dec(4000), Status: models.InvoiceOverdue, Date: day(2025, time.April, 10)},
			{ID: "i3", ProjectID: "p2", Amount: dec(2000), Status: models.InvoicePending, Date: day(2025, time.May, 10)},
			{ID: "i4", ProjectID: "p2", Amount: dec(3000), Status: models.InvoicePartial, Date: day(2025, time.May, 12)},
		},
		Attendance: []models.Attendance{
			{ID: "a1", Date: day(2025, time.June, 10)},
			{ID: "a2", Date: day(2025, time.June, 14)},
			{ID: "a3", Date: day(2025, time.June, 11)},
			{ID: "a4", Date: day(2025, time.June, 12)},
			{ID: "a5", Date: day(2025, time.June, 13)},
			{ID: "a6", Date: day(2025, time.June, 9)},
		},
	}
}

func TestSummarize_AllTime(t *testing.T) {
	in := fixture()
	s := Summarize(in.Invoices, in.Projects, AllTime(), now)

	assert.True(t, s.TotalRevenue.Equal(dec(30000)))
	assert.True(t, s.Collected.Equal(dec(6000)))
	assert.True(t, s.Overdue.Equal(dec(4000)))
	assert.True(t, s.PendingFromInvoices.Equal(dec(6000)))
	assert.True(t, s.PendingFromProjects.Equal(dec(15000)))
	assert.True(t, s.TotalPending.Equal(dec(21000)))
}

func TestSummarize_Month(t *testing.T) {
	in := fixture()

	april := Summarize(in.Invoices, in.Projects, Month(2025, time.April), now)
	assert.True(t, april.Overdue.Equal(dec(4000)))
	// p1's due follows its latest invoice into April.
	assert.True(t, april.PendingFromProjects.Equal(dec(10000)))

	jan := Summarize(in.Invoices, in.Projects, Month(2025, time.January), now)
	assert.True(t, jan.PendingFromProjects.IsZero())
	assert.True(t, jan.TotalRevenue.Equal(dec(30000)))
}

func TestBuildDashboard_Idempotent(t *testing.T) {
	in := fixture()
	first := BuildDashboard(in, now)
	second := BuildDashboard(in, now)
	assert.Equal(t, first, second)

	assert.Equal(t, 2, first.ClientCount)
	assert.Equal(t, 2, first.ActiveProjects)
	assert.Equal(t, 1, first.OverdueInvoices)
	assert.True(t, first.CollectionRate.Equal(decimal.RequireFromString("20")))
	require.Len(t, first.LatestAttendance, 5)
	assert.Equal(t, "a2", first.LatestAttendance[0].ID)
	assert.Len(t, in.Attendance, 6)
	assert.Equal(t, "a1", in.Attendance[0].ID)
}

func TestBuildDashboard_EmptyInputs(t *testing.T) {
	d := BuildDashboard(Inputs{}, now)
	assert.True(t, d.Summary.TotalRevenue.IsZero())
	assert.True(t, d.CollectionRate.IsZero())
	assert.Empty(t, d.PaymentStatus)
	assert.Len(t, d.Monthly, 12)
	assert.Len(t, d.Yearly, 4)
	assert.NotNil(t, d.LatestAttendance)
}

func TestCollectionRate(t *testing.T) {
	assert.True(t, CollectionRate(dec(1), dec(3)).Equal(decimal.RequireFromString("33.3")))
	assert.True(t, CollectionRate(dec(2), dec(3)).Equal(decimal.RequireFromString("66.7")))
	assert.True(t, CollectionRate(dec(10), decimal.Zero).IsZero())
}

func TestPaymentStatusBreakdown_DropsEmptySlices(t *testing.T) {
	slices := PaymentStatusBreakdown(Summary{Collected: dec(10), TotalPending: decimal.Zero, Overdue: dec(5)})
	require.Len(t, slices, 2)
	assert.Equal(t, "Collected", slices[0].Name)
	assert.Equal(t, "Overdue", slices[1].Name)
}

func TestDraft_GrandTotalSnapshot(t *testing.T) {
	client := models.Client{ID: "c1", TotalDue: dec(5000), DueReported: true}

	var d Draft
	d.SelectClient(client, nil)
	d.SetAmount(dec(2000))

	totals := d.Totals()
	assert.True(t, totals.Total.Equal(dec(2000)))
	assert.True(t, totals.PreviousDue.Equal(dec(5000)))
	assert.True(t, totals.GrandTotal.Equal(dec(7000)))

	client.TotalDue = dec(8000)
	d.SelectClient(client, nil)
	d.SetAmount(dec(2000))
	assert.True(t, d.Totals().GrandTotal.Equal(dec(7000)))

	var req models.InvoiceRequest
	d.Apply(&req)
	assert.Equal(t, "c1", req.ClientID)
	assert.True(t, req.GrandTotal.Equal(req.Amount.Add(req.PreviousDue)))
}

func TestDraft_ChangingClientRecaptures(t *testing.T) {
	var d Draft
	d.SelectClient(models.Client{ID: "c1", TotalDue: dec(5000), DueReported: true}, nil)
	d.SelectClient(models.Client{ID: "c2", TotalDue: dec(100), DueReported: true}, nil)
	assert.True(t, d.Totals().PreviousDue.Equal(dec(100)))
}

func TestClientDue_DerivedFromProjects(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Name: "Site", ClientID: "c1", DueAmount: dec(3000)},
		{ID: "p2", Name: "App", ClientID: "c1", DueAmount: dec(0)},
		{ID: "p3", Name: "Other", ClientID: "c2", DueAmount: dec(900)},
		{ID: "p4", Name: "Api", ClientID: "c1", DueAmount: dec(1500)},
	}
	assert.True(t, ClientDue(models.Client{ID: "c1"}, projects).Equal(dec(4500)))
	assert.True(t, ClientDue(models.Client{ID: "c1", TotalDue: dec(1), DueReported: true}, projects).Equal(dec(1)))

	breakdown := DueBreakdownFor("c1", projects)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Site", breakdown[0].ProjectName)
	assert.Equal(t, "Api", breakdown[1].ProjectName)
}

func TestCheckBudget(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Name: "Site", DueAmount: dec(10000)},
		{ID: "p2", Name: "App", DueAmount: dec(2000)},
	}
	original := &models.Invoice{ID: "i1", ProjectID: "p1", Amount: dec(3000)}

	assert.True(t, BudgetAvailable(projects[0], original).Equal(dec(13000)))
	assert.True(t, BudgetAvailable(projects[1], original).Equal(dec(2000)))

	assert.NoError(t, CheckBudget(dec(13000), "p1", projects, original))

	err := CheckBudget(dec(13001), "p1", projects, original)
	var exceeded *BudgetExceededError
	require.True(t, errors.As(err, &exceeded))
	assert.True(t, exceeded.Available.Equal(dec(13000)))
	assert.Contains(t, err.Error(), "13000.00")

	assert.Error(t, CheckBudget(dec(2001), "p2", projects, original))
	assert.NoError(t, CheckBudget(dec(10000), "p1", projects, nil))
	assert.Error(t, CheckBudget(dec(10001), "p1", projects, nil))
	assert.NoError(t, CheckBudget(dec(99999), "unknown", projects, nil))
	assert.ErrorIs(t, CheckBudget(decimal.Zero, "p1", projects, nil), ErrInvalidAmount)
}

func TestSalarySeries(t *testing.T) {
	stats := []models.SalaryStat{
		{Year: 2025, Month: "March", PayeeKind: models.KindEmployee, TotalAmount: dec(50000), Count: 2},
		{Year: 2025, Month: "January", PayeeKind: models.KindIntern, TotalAmount: dec(8000), Count: 1},
		{Year: 2024, Month: "Dec", PayeeKind: models.KindEmployee, TotalAmount: dec(25000), Count: 1},
		{Year: 2025, Month: "March", PayeeKind: models.KindIntern, TotalAmount: dec(5000), Count: 1},
	}

	monthly := MonthlySalarySeries(stats)
	require.Len(t, monthly, 3)
	assert.Equal(t, "Dec 2024", monthly[0].Label)
	assert.Equal(t, "Jan 2025", monthly[1].Label)
	assert.Equal(t, "Mar 2025", monthly[2].Label)
	assert.True(t, monthly[2].Employee.Equal(dec(50000)))
	assert.True(t, monthly[2].Intern.Equal(dec(5000)))
	assert.True(t, monthly[2].Total().Equal(dec(55000)))
	assert.Equal(t, 3, monthly[2].Count)

	yearly := YearlySalarySeries(stats)
	require.Len(t, yearly, 2)
	assert.Equal(t, 2024, yearly[0].Year)
	assert.True(t, yearly[1].Total().Equal(dec(63000)))
}

func TestMonthIndex(t *testing.T) {
	assert.Equal(t, 3, monthIndex("March"))
	assert.Equal(t, 3, monthIndex("mar"))
	assert.Equal(t, 9, monthIndex("Sept"))
	assert.Equal(t, 11, monthIndex("11"))
	assert.Equal(t, 13, monthIndex("Ma"))
	assert.Equal(t, 13, monthIndex(""))
}

func TestFilterInvoices(t *testing.T) {
	invoices := []models.Invoice{
		{ID: "1", Number: "INV-001", ClientName: "Acme", ProjectName: "Website"},
		{ID: "2", Number: "INV-002", ClientName: "Globex", Description: "Mobile app retainer"},
	}
	assert.Len(t, FilterInvoices(invoices, ""), 2)
	assert.Equal(t, "1", FilterInvoices(invoices, "acme")[0].ID)
	assert.Equal(t, "2", FilterInvoices(invoices, "RETAINER")[0].ID)
	assert.Len(t, FilterInvoices(invoices, "inv-00"), 2)
	assert.Empty(t, FilterInvoices(invoices, "nothing"))
}

func TestAttendanceHelpers(t *testing.T) {
	records := []models.Attendance{
		{Status: models.AttendancePresent, Date: day(2025, time.June, 14)},
		{Status: models.AttendanceAbsent, Date: day(2025, time.June, 13)},
		{Status: models.AttendancePresent, Date: day(2025, time.June, 15)},
	}
	assert.Equal(t, 2, PresentDays(records))
	assert.True(t, MarkedToday(records, now))
	assert.False(t, MarkedToday(records[:2], now))
}

func TestSettle(t *testing.T) {
	paid := Settle(models.Invoice{Amount: decimal.NewFromInt(2000), PreviousDue: decimal.NewFromInt(5000), Status: models.InvoicePaid})
	assert.True(t, paid.Total.Equal(decimal.NewFromInt(7000)))
	assert.True(t, paid.Paid.Equal(decimal.NewFromInt(2000)))
	assert.True(t, paid.Due.Equal(decimal.NewFromInt(5000)))

	pending := Settle(models.Invoice{Amount: decimal.NewFromInt(2000), PreviousDue: decimal.NewFromInt(5000), Status: models.InvoicePartial})
	assert.True(t, pending.Paid.IsZero())
	assert.True(t, pending.Due.Equal(decimal.NewFromInt(7000)))
}
