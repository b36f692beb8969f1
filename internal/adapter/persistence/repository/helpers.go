package repository

import (
	"time"

	"increa_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Stored amounts are decimal strings. Anything unparseable reads back as zero.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func parseDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	d, _ := entities.ParseDate(s)
	return d
}

func formatOptionalDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return entities.FormatDate(*t)
}

func parseOptionalDay(s string) *time.Time {
	d := parseDay(s)
	if d.IsZero() {
		return nil
	}
	return &d
}
