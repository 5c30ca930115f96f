package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// TaskRepository puerto de persistencia para Task.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	ListByLead(ctx context.Context, leadID string) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) error
}
