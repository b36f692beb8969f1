package response

import (
	"time"

	"increa_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ProjectResponse struct {
	ID              string    `json:"id"`
	FileNumber      string    `json:"file_number"`
	Name            string    `json:"name"`
	Department      string    `json:"department"`
	DepartmentLabel string    `json:"department_label"`
	Client          string    `json:"client"`
	BaseAmount      float64   `json:"base_amount"`
	TaxAmount       float64   `json:"tax_amount"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	StatusLabel     string    `json:"status_label"`
	IssueDate       string    `json:"issue_date"`
	PaymentDate     string    `json:"payment_date,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromProject(p entities.Project) ProjectResponse {
	r := ProjectResponse{
		ID:              p.ID,
		FileNumber:      p.FileNumber,
		Name:            p.Name,
		Department:      string(p.Department),
		DepartmentLabel: p.Department.Label(),
		Client:          p.Client,
		BaseAmount:      money(p.BaseAmount),
		TaxAmount:       money(p.TaxAmount),
		TotalAmount:     money(p.TotalAmount),
		Status:          string(p.Status),
		StatusLabel:     p.Status.Label(),
		IssueDate:       entities.FormatDate(p.IssueDate),
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.PaymentDate != nil {
		r.PaymentDate = entities.FormatDate(*p.PaymentDate)
	}
	return r
}

func FromProjects(ps []entities.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProject(p))
	}
	return out
}

// money renders an amount as a JSON number rounded to cents.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
