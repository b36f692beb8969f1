package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/infrastructure/logger"
	"increa_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectID   = errors.New("invalid project id")
	ErrInvalidFileNumber  = errors.New("invalid file number")
	ErrInvalidProjectName = errors.New("invalid project name")
	ErrInvalidClient      = errors.New("invalid client")
	ErrInvalidDepartment  = errors.New("invalid department")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidAmount      = errors.New("invalid base amount")
	ErrInvalidIssueDate   = errors.New("invalid issue date")
	ErrInvalidPaymentDate = errors.New("invalid payment date")
)

// ProjectInput is a fully specified project as entered on the invoicing form.
type ProjectInput struct {
	FileNumber  string
	Name        string
	Department  entities.Department
	Client      string
	BaseAmount  decimal.Decimal
	Status      entities.ProjectStatus
	IssueDate   time.Time
	PaymentDate *time.Time
	Notes       string
}

// ProjectPatch carries the fields to change on an existing project.
// Nil fields are left untouched. ClearPaymentDate removes a stored payment date.
type ProjectPatch struct {
	FileNumber       *string
	Name             *string
	Department       *entities.Department
	Client           *string
	BaseAmount       *decimal.Decimal
	Status           *entities.ProjectStatus
	IssueDate        *time.Time
	PaymentDate      *time.Time
	ClearPaymentDate bool
	Notes            *string
}

// ProjectFilter narrows List. Zero values match everything.
type ProjectFilter struct {
	Department entities.Department
	Status     entities.ProjectStatus
	Year       int
}

// IProjectUseCase manages the registered projects behind the billing reports.
type IProjectUseCase interface {
	Create(ctx context.Context, in ProjectInput) (entities.Project, error)
	Update(ctx context.Context, id string, patch ProjectPatch) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]entities.Project, error)
}

type ProjectUseCase struct {
	repo    interfaces.IProjectRepository
	metrics interfaces.IBillingMetrics
	now     func() time.Time
}

var _ IProjectUseCase = (*ProjectUseCase)(nil)

// NewProjectUseCase builds the use case. metrics may be nil.
func NewProjectUseCase(repo interfaces.IProjectRepository, metrics interfaces.IBillingMetrics) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, metrics: metrics, now: func() time.Time { return time.Now().UTC() }}
}

func (u *ProjectUseCase) Create(ctx context.Context, in ProjectInput) (entities.Project, error) {
	p := entities.Project{
		FileNumber:  strings.TrimSpace(in.FileNumber),
		Name:        strings.TrimSpace(in.Name),
		Department:  in.Department,
		Client:      strings.TrimSpace(in.Client),
		Status:      in.Status,
		IssueDate:   in.IssueDate,
		PaymentDate: in.PaymentDate,
		Notes:       strings.TrimSpace(in.Notes),
	}
	if p.Status == "" {
		p.Status = entities.ProjectStatusPending
	}
	if err := validateBase(in.BaseAmount); err != nil {
		return entities.Project{}, err
	}
	p.SetBaseAmount(in.BaseAmount)
	if err := validateProject(p); err != nil {
		return entities.Project{}, err
	}

	now := u.now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.Project{}, err
	}

	log := logger.FromContext(ctx, "project")
	log.Info().Str("project_id", created.ID).Str("file_number", created.FileNumber).
		Str("department", string(created.Department)).Str("total", created.TotalAmount.StringFixed(2)).
		Msg("project created")
	u.recordSaved(ctx, "create", created.Department)
	return created, nil
}

// Update loads the project, applies patch and stores it in place. Tax and
// total are recomputed from the resulting base on every update.
func (u *ProjectUseCase) Update(ctx context.Context, id string, patch ProjectPatch) (entities.Project, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}

	if patch.FileNumber != nil {
		p.FileNumber = strings.TrimSpace(*patch.FileNumber)
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Department != nil {
		p.Department = *patch.Department
	}
	if patch.Client != nil {
		p.Client = strings.TrimSpace(*patch.Client)
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.IssueDate != nil {
		p.IssueDate = *patch.IssueDate
	}
	if patch.ClearPaymentDate {
		p.PaymentDate = nil
	} else if patch.PaymentDate != nil {
		d := *patch.PaymentDate
		p.PaymentDate = &d
	}
	if patch.Notes != nil {
		p.Notes = strings.TrimSpace(*patch.Notes)
	}

	base := p.BaseAmount
	if patch.BaseAmount != nil {
		base = *patch.BaseAmount
	}
	if err := validateBase(base); err != nil {
		return entities.Project{}, err
	}
	p.SetBaseAmount(base)
	if err := validateProject(p); err != nil {
		return entities.Project{}, err
	}
	p.UpdatedAt = u.now()

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		return entities.Project{}, err
	}
	if updated.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}

	log := logger.FromContext(ctx, "project")
	log.Info().Str("project_id", updated.ID).Str("status", string(updated.Status)).
		Str("total", updated.TotalAmount.StringFixed(2)).Msg("project updated")
	u.recordSaved(ctx, "update", updated.Department)
	return updated, nil
}

func (u *ProjectUseCase) GetByID(ctx context.Context, id string) (entities.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Project{}, ErrInvalidProjectID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	return p, nil
}

// List returns the matching projects ordered by issue date, then file number.
func (u *ProjectUseCase) List(ctx context.Context, filter ProjectFilter) ([]entities.Project, error) {
	if filter.Department != "" && !filter.Department.Valid() {
		return nil, ErrInvalidDepartment
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Project, 0, len(all))
	for _, p := range all {
		if filter.Department != "" && p.Department != filter.Department {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Year != 0 && (p.IssueDate.IsZero() || p.IssueDate.Year() != filter.Year) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.Before(out[j].IssueDate)
		}
		return out[i].FileNumber < out[j].FileNumber
	})
	return out, nil
}

func (u *ProjectUseCase) recordSaved(ctx context.Context, op string, d entities.Department) {
	if u.metrics != nil {
		u.metrics.RecordProjectSaved(ctx, op, string(d))
	}
}

func validateBase(base decimal.Decimal) error {
	if base.IsNegative() || !base.Equal(base.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}

func validateProject(p entities.Project) error {
	switch {
	case p.FileNumber == "":
		return ErrInvalidFileNumber
	case p.Name == "":
		return ErrInvalidProjectName
	case p.Client == "":
		return ErrInvalidClient
	case !p.Department.Valid():
		return ErrInvalidDepartment
	case !p.Status.Valid():
		return ErrInvalidStatus
	case p.IssueDate.IsZero():
		return ErrInvalidIssueDate
	case p.PaymentDate != nil && p.PaymentDate.Before(p.IssueDate):
		return ErrInvalidPaymentDate
	}
	return nil
}
