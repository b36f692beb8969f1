package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/usecase/interfaces"
)

const projectColumns = `id, file_number, name, department, client, base_amount, tax_amount,
	total_amount, status, issue_date, payment_date, notes, created_at, updated_at`

// ProjectSQLiteRepository persists projects in the embedded SQLite database.
type ProjectSQLiteRepository struct {
	db *sql.DB
}

var _ interfaces.IProjectRepository = (*ProjectSQLiteRepository)(nil)

func NewProjectSQLiteRepository(db *sql.DB) *ProjectSQLiteRepository {
	return &ProjectSQLiteRepository{db: db}
}

func (r *ProjectSQLiteRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	it := toProjectItem(p)
	_, err := r.db.ExecContext(ctx, `INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.FileNumber, it.Name, it.Department, it.Client, it.BaseAmount, it.TaxAmount,
		it.TotalAmount, it.Status, it.IssueDate, it.PaymentDate, it.Notes, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return entities.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (r *ProjectSQLiteRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Project{}, nil
	}
	if err != nil {
		return entities.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *ProjectSQLiteRepository) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	it := toProjectItem(p)
	res, err := r.db.ExecContext(ctx, `UPDATE projects SET file_number = ?, name = ?, department = ?,
		client = ?, base_amount = ?, tax_amount = ?, total_amount = ?, status = ?, issue_date = ?,
		payment_date = ?, notes = ?, created_at = ?, updated_at = ? WHERE id = ?`,
		it.FileNumber, it.Name, it.Department, it.Client, it.BaseAmount, it.TaxAmount, it.TotalAmount,
		it.Status, it.IssueDate, it.PaymentDate, it.Notes, it.CreatedAt, it.UpdatedAt, it.ID)
	if err != nil {
		return entities.Project{}, fmt.Errorf("update project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return entities.Project{}, fmt.Errorf("update project: %w", err)
	}
	if n == 0 {
		return entities.Project{}, nil
	}
	return p, nil
}

func (r *ProjectSQLiteRepository) List(ctx context.Context) ([]entities.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []entities.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(s rowScanner) (entities.Project, error) {
	var it projectItem
	err := s.Scan(&it.ID, &it.FileNumber, &it.Name, &it.Department, &it.Client, &it.BaseAmount,
		&it.TaxAmount, &it.TotalAmount, &it.Status, &it.IssueDate, &it.PaymentDate, &it.Notes,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

// PaymentSQLiteRepository persists payments in the embedded SQLite database.
// Only the raw provider payload is stored; the parsed form is rebuilt on read.
type PaymentSQLiteRepository struct {
	db *sql.DB
}

var _ interfaces.IPaymentRepository = (*PaymentSQLiteRepository)(nil)

func NewPaymentSQLiteRepository(db *sql.DB) *PaymentSQLiteRepository {
	return &PaymentSQLiteRepository{db: db}
}

func (r *PaymentSQLiteRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it := toPaymentItem(p)
	_, err := r.db.ExecContext(ctx, `INSERT INTO payments (id, project_id, amount, date, status, provider_payload_raw)
		VALUES (?, ?, ?, ?, ?, ?)`,
		it.ID, it.ProjectID, it.Amount, it.Date, it.Status, it.ProviderPayloadRaw)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	return p, nil
}

func (r *PaymentSQLiteRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, project_id, amount, date, status, provider_payload_raw
		FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Payment{}, nil
	}
	if err != nil {
		return entities.Payment{}, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *PaymentSQLiteRepository) ListByProjectID(ctx context.Context, projectID string) ([]entities.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, project_id, amount, date, status, provider_payload_raw
		FROM payments WHERE project_id = ? ORDER BY date, rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]entities.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanPayment(s rowScanner) (entities.Payment, error) {
	var it paymentItem
	if err := s.Scan(&it.ID, &it.ProjectID, &it.Amount, &it.Date, &it.Status, &it.ProviderPayloadRaw); err != nil {
		return entities.Payment{}, err
	}
	if it.ProviderPayloadRaw != "" {
		var parsed map[string]any
		if json.Unmarshal([]byte(it.ProviderPayloadRaw), &parsed) == nil {
			it.ProviderPayload = parsed
		}
	}
	return fromPaymentItem(it), nil
}
