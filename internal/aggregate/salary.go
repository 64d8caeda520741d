package aggregate

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"agency-console/internal/models"
)

type SalaryPoint struct {
	Label    string          `json:"label"`
	Year     int             `json:"year"`
	Month    string          `json:"month,omitempty"`
	Employee decimal.Decimal `json:"employee"`
	Intern   decimal.Decimal `json:"intern"`
	Count    int             `json:"count"`
}

func (p SalaryPoint) Total() decimal.Decimal {
	return p.Employee.Add(p.Intern)
}

// monthIndex maps "March", "mar" or "3" to its calendar position; unknown
// names sort after December.
func monthIndex(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= 12 {
		return n
	}
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || (len(name) >= 3 && strings.HasPrefix(full, name)) {
			return int(m)
		}
	}
	return 13
}

func addStat(p *SalaryPoint, s models.SalaryStat) {
	switch s.PayeeKind {
	case models.KindEmployee:
		p.Employee = p.Employee.Add(s.TotalAmount)
	case models.KindIntern:
		p.Intern = p.Intern.Add(s.TotalAmount)
	}
	p.Count += s.Count
}

// MonthlySalarySeries groups stats by (year, month), sorted by year and then
// calendar month.
func MonthlySalarySeries(stats []models.SalaryStat) []SalaryPoint {
	type key struct {
		year  int
		month int
		name  string
	}
	points := map[key]*SalaryPoint{}
	for _, s := range stats {
		idx := monthIndex(s.Month)
		k := key{year: s.Year, month: idx}
		if idx == 13 {
			k.name = s.Month
		}
		p, ok := points[k]
		if !ok {
			label := s.Month
			if idx <= 12 {
				label = time.Month(idx).String()[:3]
			}
			p = &SalaryPoint{Label: label + " " + strconv.Itoa(s.Year), Year: s.Year, Month: label, Employee: decimal.Zero, Intern: decimal.Zero}
			points[k] = p
		}
		addStat(p, s)
	}

	keys := make([]key, 0, len(points))
	for k := range points {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		if keys[i].month != keys[j].month {
			return keys[i].month < keys[j].month
		}
		return keys[i].name < keys[j].name
	})

	out := make([]SalaryPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, *points[k])
	}
	return out
}

// YearlySalarySeries groups stats by year, ascending.
func YearlySalarySeries(stats []models.SalaryStat) []SalaryPoint {
	points := map[int]*SalaryPoint{}
	for _, s := range stats {
		p, ok := points[s.Year]
		if !ok {
			p = &SalaryPoint{Label: strconv.Itoa(s.Year), Year: s.Year, Employee: decimal.Zero, Intern: decimal.Zero}
			points[s.Year] = p
		}
		addStat(p, s)
	}
	years := make([]int, 0, len(points))
	for y := range points {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]SalaryPoint, 0, len(years))
	for _, y := range years {
		out = append(out, *points[y])
	}
	return out
}

// TotalPaidTo sums the payments made to one person.
func TotalPaidTo(payments []models.SalaryPayment, personID string) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.Payee != nil && p.Payee.PersonID() == personID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}
