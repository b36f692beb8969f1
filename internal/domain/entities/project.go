package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Department is one of the firm's fixed business units.
type Department string

const (
	DepartmentBIM        Department = "bim"
	DepartmentCivilWorks Department = "civil_works"
	DepartmentBuilding   Department = "building"
	DepartmentIndustrial Department = "industrial"
)

// ProjectStatus represents where an invoice is in its billing cycle.
type ProjectStatus string

const (
	ProjectStatusPending ProjectStatus = "pending"
	ProjectStatusSent    ProjectStatus = "sent"
	ProjectStatusPaid    ProjectStatus = "paid"
)

// DateLayout is the calendar-date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// VATRate is the Spanish general VAT applied to every project budget.
var VATRate = decimal.RequireFromString("0.21")

var departmentLabels = map[Department]string{
	DepartmentBIM:        "BIM",
	DepartmentCivilWorks: "Obra Civil",
	DepartmentBuilding:   "Edificación",
	DepartmentIndustrial: "Industrial",
}

var statusLabels = map[ProjectStatus]string{
	ProjectStatusPending: "Pendiente de enviar",
	ProjectStatusSent:    "Enviada",
	ProjectStatusPaid:    "Pagada",
}

// Project is one invoiced project entry ("expediente").
//
// Monetary representation:
//   - BaseAmount is the budget entered by the user.
//   - TaxAmount and TotalAmount are always derived from BaseAmount via SetBaseAmount
//     and must never be assigned independently.
//
// Storage model (DynamoDB):
//   - PK: id
type Project struct {
	ID          string          `json:"id"`
	FileNumber  string          `json:"file_number"`
	Name        string          `json:"name"`
	Department  Department      `json:"department"`
	Client      string          `json:"client"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      ProjectStatus   `json:"status"`
	IssueDate   time.Time       `json:"issue_date"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SetBaseAmount stores the budget and recomputes tax and total from it.
// Calling it again with the same base leaves the derived amounts unchanged.
func (p *Project) SetBaseAmount(base decimal.Decimal) {
	p.BaseAmount = base.Round(2)
	p.TaxAmount, p.TotalAmount = ComputeTax(p.BaseAmount)
}

// ComputeTax returns the VAT and the VAT-inclusive total for base, each rounded
// to cents independently.
func ComputeTax(base decimal.Decimal) (tax decimal.Decimal, total decimal.Decimal) {
	vat := base.Mul(VATRate)
	return vat.Round(2), base.Add(vat).Round(2)
}

// Departments returns every department in reporting order.
func Departments() []Department {
	return []Department{DepartmentBIM, DepartmentCivilWorks, DepartmentBuilding, DepartmentIndustrial}
}

// ProjectStatuses returns every status in billing-cycle order.
func ProjectStatuses() []ProjectStatus {
	return []ProjectStatus{ProjectStatusPending, ProjectStatusSent, ProjectStatusPaid}
}

func (d Department) Valid() bool {
	_, ok := departmentLabels[d]
	return ok
}

// Label returns the name shown on the invoicing form.
func (d Department) Label() string {
	if l, ok := departmentLabels[d]; ok {
		return l
	}
	return string(d)
}

func (s ProjectStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s ProjectStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseDepartment accepts either the department code or its form label,
// case-insensitively.
func ParseDepartment(raw string) (Department, bool) {
	raw = strings.TrimSpace(raw)
	for _, d := range Departments() {
		if strings.EqualFold(raw, string(d)) || strings.EqualFold(raw, departmentLabels[d]) {
			return d, true
		}
	}
	return "", false
}

// ParseProjectStatus accepts either the status code or its form label,
// case-insensitively.
func ParseProjectStatus(raw string) (ProjectStatus, bool) {
	raw = strings.TrimSpace(raw)
	for _, s := range ProjectStatuses() {
		if strings.EqualFold(raw, string(s)) || strings.EqualFold(raw, statusLabels[s]) {
			return s, true
		}
	}
	return "", false
}

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
