package response

import "increa_invoicing/internal/domain/entities"

// AggregateRowResponse is one chart bucket. Field names follow the dashboard
// series (pendiente, enviada, pagada).
type AggregateRowResponse struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Pendiente float64 `json:"pendiente"`
	Enviada   float64 `json:"enviada"`
	Pagada    float64 `json:"pagada"`
	Total     float64 `json:"total"`
}

type BillingReportResponse struct {
	Mode string                 `json:"mode"`
	Year int                    `json:"year,omitempty"`
	Rows []AggregateRowResponse `json:"rows"`
}

func FromAggregate(mode entities.GroupingMode, year int, rows []entities.AggregateRow) BillingReportResponse {
	out := BillingReportResponse{Mode: string(mode), Rows: make([]AggregateRowResponse, 0, len(rows))}
	if mode == entities.GroupingMonthly {
		out.Year = year
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, AggregateRowResponse{
			Key:       r.Key,
			Label:     r.Label,
			Pendiente: money(r.Pending),
			Enviada:   money(r.Sent),
			Pagada:    money(r.Paid),
			Total:     money(r.Total),
		})
	}
	return out
}

type DepartmentAnalysisResponse struct {
	Departamento   string  `json:"departamento"`
	Label          string  `json:"label"`
	Proyectos      int     `json:"proyectos"`
	Facturado      float64 `json:"facturado"`
	Pagado         float64 `json:"pagado"`
	PendienteCobro float64 `json:"pendiente_cobro"`
	Rentabilidad   float64 `json:"rentabilidad"`
}

func FromDepartmentAnalysis(in []entities.DepartmentAnalysis) []DepartmentAnalysisResponse {
	out := make([]DepartmentAnalysisResponse, 0, len(in))
	for _, a := range in {
		out = append(out, DepartmentAnalysisResponse{
			Departamento:   string(a.Department),
			Label:          a.Department.Label(),
			Proyectos:      a.Projects,
			Facturado:      money(a.Billed),
			Pagado:         money(a.Paid),
			PendienteCobro: money(a.Outstanding),
			Rentabilidad:   a.Profitability,
		})
	}
	return out
}

type SummaryResponse struct {
	Proyectos      int     `json:"proyectos"`
	Facturado      float64 `json:"facturado"`
	Pagado         float64 `json:"pagado"`
	PendienteCobro float64 `json:"pendiente_cobro"`
}

func FromSummary(s entities.BillingSummary) SummaryResponse {
	return SummaryResponse{
		Proyectos:      s.Projects,
		Facturado:      money(s.Billed),
		Pagado:         money(s.Paid),
		PendienteCobro: money(s.Outstanding),
	}
}
