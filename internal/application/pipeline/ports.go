// Package pipeline contiene los casos de uso del pipeline de ventas:
// cambio de estado de un lead y su vista de progreso.
package pipeline

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repos de leads y actividades en una misma transacción.
type TxRunner interface {
	RunPipeline(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		activityRepo repository.ActivityRepository,
	) error) error
}

// EventPublisher publica eventos de dominio. Se invoca después del commit.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// RoutingKeyStatusChanged clave de ruteo del evento de cambio de etapa.
const RoutingKeyStatusChanged = "lead.status_changed"
