package repository

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/usecase/interfaces"
)

// ErrDuplicateID is returned when creating a record whose id is already stored.
var ErrDuplicateID = errors.New("record already exists")

// ProjectMemoryRepository keeps projects in process memory, in insertion order.
type ProjectMemoryRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]entities.Project
}

var _ interfaces.IProjectRepository = (*ProjectMemoryRepository)(nil)

func NewProjectMemoryRepository() *ProjectMemoryRepository {
	return &ProjectMemoryRepository{items: make(map[string]entities.Project)}
}

func (r *ProjectMemoryRepository) Create(_ context.Context, p entities.Project) (entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; ok {
		return entities.Project{}, ErrDuplicateID
	}
	r.items[p.ID] = cloneProject(p)
	r.order = append(r.order, p.ID)
	return cloneProject(p), nil
}

func (r *ProjectMemoryRepository) GetByID(_ context.Context, id string) (entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return entities.Project{}, nil
	}
	return cloneProject(p), nil
}

func (r *ProjectMemoryRepository) Update(_ context.Context, p entities.Project) (entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return entities.Project{}, nil
	}
	r.items[p.ID] = cloneProject(p)
	return cloneProject(p), nil
}

func (r *ProjectMemoryRepository) List(_ context.Context) ([]entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Project, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneProject(r.items[id]))
	}
	return out, nil
}

// PaymentMemoryRepository keeps payments in process memory.
type PaymentMemoryRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]entities.Payment
}

var _ interfaces.IPaymentRepository = (*PaymentMemoryRepository)(nil)

func NewPaymentMemoryRepository() *PaymentMemoryRepository {
	return &PaymentMemoryRepository{items: make(map[string]entities.Payment)}
}

func (r *PaymentMemoryRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; ok {
		return entities.Payment{}, ErrDuplicateID
	}
	r.items[p.ID] = clonePayment(p)
	r.order = append(r.order, p.ID)
	return clonePayment(p), nil
}

func (r *PaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return entities.Payment{}, nil
	}
	return clonePayment(p), nil
}

func (r *PaymentMemoryRepository) ListByProjectID(_ context.Context, projectID string) ([]entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Payment, 0)
	for _, id := range r.order {
		if p := r.items[id]; p.ProjectID == projectID {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

func cloneProject(p entities.Project) entities.Project {
	if p.PaymentDate != nil {
		d := *p.PaymentDate
		p.PaymentDate = &d
	}
	return p
}

func clonePayment(p entities.Payment) entities.Payment {
	p.ProviderPayloadRaw = bytes.Clone(p.ProviderPayloadRaw)
	p.ProviderPayload = cloneValue(p.ProviderPayload).(map[string]any)
	return p
}

// cloneValue deep-copies decoded JSON values.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}
