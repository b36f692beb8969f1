package interfaces

import (
	"context"
	"increa_invoicing/internal/domain/entities"
)

// IProjectRepository abstracts persistence for Project.
//
// Implementations return a zero Project (empty ID) and a nil error when the
// requested project does not exist. There is deliberately no delete: invoices
// stay on record once created.

type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	Update(ctx context.Context, p entities.Project) (entities.Project, error)
	List(ctx context.Context) ([]entities.Project, error)
}
