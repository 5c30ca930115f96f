package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/validate"
)

// ActivityUseCase historial de un lead. Las de tipo status_change también las genera el pipeline.
type ActivityUseCase struct {
	repo  repository.ActivityRepository
	leads repository.LeadRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository, leads repository.LeadRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, leads: leads}
}

// Create agrega una actividad al lead. ErrNotFound si el lead no existe.
func (uc *ActivityUseCase) Create(ctx context.Context, userID, leadID string, in dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := ensureLead(ctx, uc.leads, leadID); err != nil {
		return nil, err
	}
	now := entity.Now()
	a := &entity.Activity{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		UserID:      userID,
		Type:        in.Type,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return ToActivityResponse(a), nil
}

// ListByLead devuelve el historial, más reciente primero.
func (uc *ActivityUseCase) ListByLead(ctx context.Context, leadID string) ([]dto.ActivityResponse, error) {
	if err := ensureLead(ctx, uc.leads, leadID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *ToActivityResponse(a))
	}
	return out, nil
}

// Update edita una actividad. (nil, nil) si no existe.
func (uc *ActivityUseCase) Update(ctx context.Context, id string, in dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.Title != nil {
		a.Title = trimPtr(in.Title)
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	a.UpdatedAt = entity.Now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return ToActivityResponse(a), nil
}

// Delete elimina una actividad.
func (uc *ActivityUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ensureLead devuelve ErrNotFound si el lead no existe.
func ensureLead(ctx context.Context, leads repository.LeadRepository, leadID string) error {
	l, err := leads.GetByID(ctx, leadID)
	if err != nil {
		return err
	}
	if l == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ToActivityResponse mapea la entidad.
func ToActivityResponse(a *entity.Activity) *dto.ActivityResponse {
	if a == nil {
		return nil
	}
	return &dto.ActivityResponse{
		ID:          a.ID,
		LeadID:      a.LeadID,
		UserID:      a.UserID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
