package usecase

import (
	"context"
	"errors"
	"time"

	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/domain/reporting"
	"increa_invoicing/internal/infrastructure/logger"
	"increa_invoicing/internal/usecase/interfaces"
)

var (
	ErrInvalidGroupingMode = errors.New("invalid grouping mode")
	ErrInvalidYear         = errors.New("invalid year")
)

const (
	minReportYear = 1900
	maxReportYear = 9999
)

// IReportUseCase produces the dashboard reports over every stored project.
type IReportUseCase interface {
	Aggregate(ctx context.Context, mode entities.GroupingMode, year int) ([]entities.AggregateRow, error)
	AnalyzeDepartments(ctx context.Context) ([]entities.DepartmentAnalysis, error)
	Summary(ctx context.Context) (entities.BillingSummary, error)
}

type ReportUseCase struct {
	repo    interfaces.IProjectRepository
	metrics interfaces.IBillingMetrics
	now     func() time.Time
}

var _ IReportUseCase = (*ReportUseCase)(nil)

func NewReportUseCase(repo interfaces.IProjectRepository, metrics interfaces.IBillingMetrics) *ReportUseCase {
	return &ReportUseCase{repo: repo, metrics: metrics, now: func() time.Time { return time.Now().UTC() }}
}

// Aggregate groups every project by mode. A zero year means the current year.
func (u *ReportUseCase) Aggregate(ctx context.Context, mode entities.GroupingMode, year int) ([]entities.AggregateRow, error) {
	if _, ok := validModes[mode]; !ok {
		return nil, ErrInvalidGroupingMode
	}
	if year == 0 {
		year = u.now().Year()
	}
	if year < minReportYear || year > maxReportYear {
		return nil, ErrInvalidYear
	}

	projects, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := reporting.Aggregate(projects, mode, year)

	log := logger.FromContext(ctx, "report")
	log.Debug().Str("mode", string(mode)).Int("year", year).
		Int("projects", len(projects)).Int("rows", len(rows)).Msg("billing report built")
	u.record(ctx, string(mode))
	return rows, nil
}

func (u *ReportUseCase) AnalyzeDepartments(ctx context.Context) ([]entities.DepartmentAnalysis, error) {
	projects, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	u.record(ctx, "departments")
	return reporting.AnalyzeDepartments(projects), nil
}

func (u *ReportUseCase) Summary(ctx context.Context) (entities.BillingSummary, error) {
	projects, err := u.repo.List(ctx)
	if err != nil {
		return entities.BillingSummary{}, err
	}
	u.record(ctx, "summary")
	return reporting.Summarize(projects), nil
}

func (u *ReportUseCase) record(ctx context.Context, report string) {
	if u.metrics != nil {
		u.metrics.RecordReport(ctx, report)
	}
}

var validModes = func() map[entities.GroupingMode]struct{} {
	m := make(map[entities.GroupingMode]struct{})
	for _, mode := range entities.GroupingModes() {
		m[mode] = struct{}{}
	}
	return m
}()
