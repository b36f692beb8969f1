// Package reporting turns a list of projects into the rows behind the billing
// dashboard charts.
//
// Every function here is pure: it never mutates its input, keeps no state and
// never fails. Records that cannot be placed in a bucket are left out:
//   - a project without issue date is skipped by the date-keyed groupings;
//   - a project with an unknown status or department lands in no bucket;
//   - a missing amount is a zero decimal and contributes nothing.
package reporting

import (
	"sort"
	"strconv"
	"time"

	"increa_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var monthLabels = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// statusFields maps each status to the row field that accumulates it.
var statusFields = map[entities.ProjectStatus]func(*entities.AggregateRow) *decimal.Decimal{
	entities.ProjectStatusPending: func(r *entities.AggregateRow) *decimal.Decimal { return &r.Pending },
	entities.ProjectStatusSent:    func(r *entities.AggregateRow) *decimal.Decimal { return &r.Sent },
	entities.ProjectStatusPaid:    func(r *entities.AggregateRow) *decimal.Decimal { return &r.Paid },
}

// Aggregate groups projects by mode and sums their totals per status.
// year is only used by the monthly mode. An unknown mode yields no rows.
func Aggregate(projects []entities.Project, mode entities.GroupingMode, year int) []entities.AggregateRow {
	switch mode {
	case entities.GroupingDaily:
		return groupByDate(projects, func(day time.Time) (time.Time, string) {
			return day, entities.FormatDate(day)
		})
	case entities.GroupingWeekly:
		return groupByDate(projects, func(day time.Time) (time.Time, string) {
			start := day.AddDate(0, 0, -int(day.Weekday()))
			return start, "Semana " + entities.FormatDate(start)
		})
	case entities.GroupingMonthly:
		return groupByMonth(projects, year)
	case entities.GroupingAnnual:
		return groupByDate(projects, func(day time.Time) (time.Time, string) {
			return time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), strconv.Itoa(day.Year())
		})
	case entities.GroupingDepartment:
		return groupByDepartment(projects)
	}
	return nil
}

// AnalyzeDepartments returns one entry per department, most profitable first.
// Departments with the same profitability keep the fixed department order.
func AnalyzeDepartments(projects []entities.Project) []entities.DepartmentAnalysis {
	out := make([]entities.DepartmentAnalysis, 0, len(entities.Departments()))
	for _, d := range entities.Departments() {
		a := entities.DepartmentAnalysis{Department: d, Billed: decimal.Zero, Paid: decimal.Zero}
		for _, p := range projects {
			if p.Department != d {
				continue
			}
			a.Projects++
			a.Billed = a.Billed.Add(p.TotalAmount)
			if p.Status == entities.ProjectStatusPaid {
				a.Paid = a.Paid.Add(p.TotalAmount)
			}
		}
		a.Outstanding = a.Billed.Sub(a.Paid)
		a.Profitability = Percentage(a.Paid, a.Billed)
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Profitability > out[j].Profitability
	})
	return out
}

// Summarize totals every project regardless of department or date.
func Summarize(projects []entities.Project) entities.BillingSummary {
	s := entities.BillingSummary{Billed: decimal.Zero, Paid: decimal.Zero}
	for _, p := range projects {
		s.Projects++
		s.Billed = s.Billed.Add(p.TotalAmount)
		if p.Status == entities.ProjectStatusPaid {
			s.Paid = s.Paid.Add(p.TotalAmount)
		}
	}
	s.Outstanding = s.Billed.Sub(s.Paid)
	return s
}

// Percentage returns part / whole × 100 rounded to two decimals, or 0 when
// whole is zero.
func Percentage(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

type dateBucket struct {
	at  time.Time
	row entities.AggregateRow
}

// groupByDate buckets projects by the key returned for their issue day and
// returns the rows in ascending bucket order.
func groupByDate(projects []entities.Project, keyOf func(day time.Time) (time.Time, string)) []entities.AggregateRow {
	buckets := make(map[time.Time]*dateBucket)
	for _, p := range projects {
		if p.IssueDate.IsZero() {
			continue
		}
		at, label := keyOf(calendarDay(p.IssueDate))
		b, ok := buckets[at]
		if !ok {
			b = &dateBucket{at: at, row: newRow(entities.FormatDate(at), label)}
			buckets[at] = b
		}
		addByStatus(&b.row, p)
	}

	ordered := make([]*dateBucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].at.Before(ordered[j].at) })

	rows := make([]entities.AggregateRow, 0, len(ordered))
	for _, b := range ordered {
		rows = append(rows, b.row)
	}
	return rows
}

func groupByMonth(projects []entities.Project, year int) []entities.AggregateRow {
	rows := make([]entities.AggregateRow, 12)
	for m := range rows {
		key := strconv.Itoa(year) + "-" + twoDigits(m+1)
		rows[m] = newRow(key, monthLabels[m])
	}
	for _, p := range projects {
		if p.IssueDate.IsZero() || p.IssueDate.Year() != year {
			continue
		}
		addByStatus(&rows[int(p.IssueDate.Month())-1], p)
	}
	return rows
}

func groupByDepartment(projects []entities.Project) []entities.AggregateRow {
	rows := make([]entities.AggregateRow, 0, len(entities.Departments()))
	for _, d := range entities.Departments() {
		row := newRow(string(d), d.Label())
		for _, p := range projects {
			if p.Department == d {
				row.Total = row.Total.Add(p.TotalAmount)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func addByStatus(row *entities.AggregateRow, p entities.Project) {
	field, ok := statusFields[p.Status]
	if !ok {
		return
	}
	sum := field(row)
	*sum = sum.Add(p.TotalAmount)
	row.Total = row.Total.Add(p.TotalAmount)
}

func newRow(key, label string) entities.AggregateRow {
	return entities.AggregateRow{
		Key:     key,
		Label:   label,
		Pending: decimal.Zero,
		Sent:    decimal.Zero,
		Paid:    decimal.Zero,
		Total:   decimal.Zero,
	}
}

// calendarDay drops the clock so two timestamps on the same date share a key.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
