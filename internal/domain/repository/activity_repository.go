package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// ActivityRepository puerto de persistencia para Activity.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	ListByLead(ctx context.Context, leadID string) ([]*entity.Activity, error)
	Update(ctx context.Context, activity *entity.Activity) error
	Delete(ctx context.Context, id string) error
}
