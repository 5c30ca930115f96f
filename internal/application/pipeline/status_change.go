package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	catalog "github.com/jhoicas/crm-api/internal/domain/pipeline"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/logger"
	"github.com/jhoicas/crm-api/pkg/metrics"
)

// StatusChangedEvent payload de lead.status_changed.
type StatusChangedEvent struct {
	LeadID     string    `json:"lead_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	UserID     string    `json:"user_id,omitempty"`
	ActivityID string    `json:"activity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StatusChangeUseCase mueve un lead entre etapas y deja constancia en su historial.
//
// El estado y la actividad status_change se escriben en la misma transacción: si la
// persistencia falla no queda ninguna actividad registrada. El evento se publica
// después del commit; un fallo al publicar se registra y no revierte el cambio.
type StatusChangeUseCase struct {
	leads     repository.LeadRepository
	tx        TxRunner
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewStatusChangeUseCase construye el caso de uso. publisher puede ser nil.
func NewStatusChangeUseCase(
	leads repository.LeadRepository,
	tx TxRunner,
	publisher EventPublisher,
	log *logger.Logger,
) *StatusChangeUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StatusChangeUseCase{leads: leads, tx: tx, publisher: publisher, log: log, now: entity.Now}
}

// ChangeStatus cambia la etapa del lead.
//
//   - newStatus fuera del catálogo: error que envuelve domain.ErrUnknownStatus, sin tocar la base.
//   - newStatus igual al actual: no-op (Changed=false), sin escritura ni actividad.
//   - lead inexistente: domain.ErrNotFound.
func (uc *StatusChangeUseCase) ChangeStatus(ctx context.Context, userID, leadID, newStatus string) (*dto.ChangeStatusResponse, error) {
	newStatus = strings.TrimSpace(newStatus)
	if !catalog.IsValid(newStatus) {
		return nil, catalog.CanTransition("", newStatus)
	}

	var (
		lead     *entity.Lead
		activity *entity.Activity
		from     string
	)
	err := uc.tx.RunPipeline(ctx, func(leadRepo repository.LeadRepository, activityRepo repository.ActivityRepository) error {
		var err error
		lead, err = leadRepo.GetByIDForUpdate(ctx, leadID)
		if err != nil {
			return err
		}
		if lead == nil {
			return domain.ErrNotFound
		}
		from = lead.Status
		if err := catalog.CanTransition(from, newStatus); err != nil {
			return err
		}
		now := uc.now()
		if err := leadRepo.UpdateStatus(ctx, leadID, newStatus, now); err != nil {
			return err
		}
		activity = &entity.Activity{
			ID:          uuid.New().String(),
			LeadID:      leadID,
			UserID:      userID,
			Type:        entity.ActivityTypeStatusChange,
			Title:       "Cambio de estado",
			Description: catalog.TransitionDescription(from, newStatus),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return activityRepo.Create(ctx, activity)
	})
	if errors.Is(err, catalog.ErrSameStatus) {
		return &dto.ChangeStatusResponse{Lead: *usecase.ToLeadResponse(lead), Changed: false}, nil
	}
	if err != nil {
		return nil, err
	}

	lead.Status = newStatus
	lead.UpdatedAt = activity.CreatedAt
	metrics.IncLeadStatusChange(from, newStatus)
	uc.publish(ctx, StatusChangedEvent{
		LeadID:     leadID,
		From:       from,
		To:         newStatus,
		UserID:     userID,
		ActivityID: activity.ID,
		OccurredAt: activity.CreatedAt,
	})

	return &dto.ChangeStatusResponse{
		Lead:     *usecase.ToLeadResponse(lead),
		Changed:  true,
		Activity: usecase.ToActivityResponse(activity),
	}, nil
}

func (uc *StatusChangeUseCase) publish(ctx context.Context, ev StatusChangedEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, RoutingKeyStatusChanged, ev); err != nil {
		uc.log.Warn().Err(err).
			Str("lead_id", ev.LeadID).
			Str("from", ev.From).
			Str("to", ev.To).
			Msg("no se pudo publicar lead.status_changed")
	}
}

// Progress devuelve la vista de progreso del lead. (nil, nil) si no existe.
func (uc *StatusChangeUseCase) Progress(ctx context.Context, leadID string) (*dto.PipelineProgressResponse, error) {
	lead, err := uc.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, nil
	}
	return &dto.PipelineProgressResponse{
		LeadID:  lead.ID,
		Current: lead.Status,
		Steps:   catalog.Progress(catalog.Stages(), lead.Status),
	}, nil
}

// Stages devuelve el catálogo de etapas en orden.
func (uc *StatusChangeUseCase) Stages() dto.StagesResponse {
	return dto.StagesResponse{Stages: catalog.Stages()}
}
