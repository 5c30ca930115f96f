package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para Order y sus ítems.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// Update actualiza solo campos de cabecera (status, payment_status, notes).
	Update(ctx context.Context, order *entity.Order) error
	// Delete elimina la cabecera; los ítems caen por ON DELETE CASCADE.
	Delete(ctx context.Context, id string) error
}
