package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GroupingMode is the bucket granularity of a billing report.
type GroupingMode string

const (
	GroupingDaily      GroupingMode = "daily"
	GroupingWeekly     GroupingMode = "weekly"
	GroupingMonthly    GroupingMode = "monthly"
	GroupingAnnual     GroupingMode = "annual"
	GroupingDepartment GroupingMode = "department"
)

func GroupingModes() []GroupingMode {
	return []GroupingMode{GroupingDaily, GroupingWeekly, GroupingMonthly, GroupingAnnual, GroupingDepartment}
}

// ParseGroupingMode is case-insensitive and also accepts the chart selector
// names used by the dashboard (dia, semana, mes, año, departamento).
func ParseGroupingMode(raw string) (GroupingMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "daily", "day", "dia", "día":
		return GroupingDaily, true
	case "weekly", "week", "semana":
		return GroupingWeekly, true
	case "monthly", "month", "mes":
		return GroupingMonthly, true
	case "annual", "yearly", "year", "año", "ano":
		return GroupingAnnual, true
	case "department", "departamento":
		return GroupingDepartment, true
	}
	return "", false
}

// AggregateRow is one bucket of a billing report.
//
// Status-based modes fill Pending, Sent and Paid and set Total to their sum.
// The department mode only fills Total.
type AggregateRow struct {
	Key     string
	Label   string
	Pending decimal.Decimal
	Sent    decimal.Decimal
	Paid    decimal.Decimal
	Total   decimal.Decimal
}

// DepartmentAnalysis summarizes billing and collection for one department.
type DepartmentAnalysis struct {
	Department    Department
	Projects      int
	Billed        decimal.Decimal
	Paid          decimal.Decimal
	Outstanding   decimal.Decimal
	Profitability float64 // percentage of billed already paid, 0 when nothing was billed
}

// BillingSummary is the dashboard header: totals over every project.
type BillingSummary struct {
	Projects    int
	Billed      decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
}
