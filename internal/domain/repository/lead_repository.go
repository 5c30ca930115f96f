package repository

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// LeadRepository puerto de persistencia para Lead (tabla wp_leads).
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	// GetByIDForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	// UpdateStatus envía solo el campo cambiado.
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
