package request

import (
	"strings"
	"time"

	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/usecase"

	"github.com/shopspring/decimal"
)

// ProjectRequest is the invoicing form payload. Department and status accept
// either their code or the label shown on the form; dates are YYYY-MM-DD.
type ProjectRequest struct {
	FileNumber  string          `json:"file_number" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Department  string          `json:"department" binding:"required"`
	Client      string          `json:"client" binding:"required"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	Status      string          `json:"status"`
	IssueDate   string          `json:"issue_date" binding:"required"`
	PaymentDate string          `json:"payment_date"`
	Notes       string          `json:"notes"`
}

// ToInput resolves the form values. Errors are the use case validation errors.
func (r ProjectRequest) ToInput() (usecase.ProjectInput, error) {
	dept, ok := entities.ParseDepartment(r.Department)
	if !ok {
		return usecase.ProjectInput{}, usecase.ErrInvalidDepartment
	}

	var status entities.ProjectStatus
	if strings.TrimSpace(r.Status) != "" {
		if status, ok = entities.ParseProjectStatus(r.Status); !ok {
			return usecase.ProjectInput{}, usecase.ErrInvalidStatus
		}
	}

	issue, err := entities.ParseDate(r.IssueDate)
	if err != nil {
		return usecase.ProjectInput{}, usecase.ErrInvalidIssueDate
	}

	paid, err := parseOptionalDate(r.PaymentDate)
	if err != nil {
		return usecase.ProjectInput{}, usecase.ErrInvalidPaymentDate
	}

	return usecase.ProjectInput{
		FileNumber:  r.FileNumber,
		Name:        r.Name,
		Department:  dept,
		Client:      r.Client,
		BaseAmount:  r.BaseAmount,
		Status:      status,
		IssueDate:   issue,
		PaymentDate: paid,
		Notes:       r.Notes,
	}, nil
}

// ProjectPatchRequest edits an existing project. Absent fields are kept; an
// empty payment_date removes the stored one.
type ProjectPatchRequest struct {
	FileNumber  *string          `json:"file_number"`
	Name        *string          `json:"name"`
	Department  *string          `json:"department"`
	Client      *string          `json:"client"`
	BaseAmount  *decimal.Decimal `json:"base_amount"`
	Status      *string          `json:"status"`
	IssueDate   *string          `json:"issue_date"`
	PaymentDate *string          `json:"payment_date"`
	Notes       *string          `json:"notes"`
}

func (r ProjectPatchRequest) ToPatch() (usecase.ProjectPatch, error) {
	patch := usecase.ProjectPatch{
		FileNumber: r.FileNumber,
		Name:       r.Name,
		Client:     r.Client,
		BaseAmount: r.BaseAmount,
		Notes:      r.Notes,
	}

	if r.Department != nil {
		dept, ok := entities.ParseDepartment(*r.Department)
		if !ok {
			return usecase.ProjectPatch{}, usecase.ErrInvalidDepartment
		}
		patch.Department = &dept
	}
	if r.Status != nil {
		status, ok := entities.ParseProjectStatus(*r.Status)
		if !ok {
			return usecase.ProjectPatch{}, usecase.ErrInvalidStatus
		}
		patch.Status = &status
	}
	if r.IssueDate != nil {
		issue, err := entities.ParseDate(*r.IssueDate)
		if err != nil {
			return usecase.ProjectPatch{}, usecase.ErrInvalidIssueDate
		}
		patch.IssueDate = &issue
	}
	if r.PaymentDate != nil {
		paid, err := parseOptionalDate(*r.PaymentDate)
		if err != nil {
			return usecase.ProjectPatch{}, usecase.ErrInvalidPaymentDate
		}
		patch.PaymentDate = paid
		patch.ClearPaymentDate = paid == nil
	}
	return patch, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := entities.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
