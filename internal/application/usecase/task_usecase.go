package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/validate"
)

// TaskUseCase tareas de seguimiento de un lead.
type TaskUseCase struct {
	repo  repository.TaskRepository
	leads repository.LeadRepository
	now   func() time.Time
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, leads repository.LeadRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo, leads: leads, now: entity.Now}
}

// Create agrega una tarea. Por defecto: prioridad medium, estado pending.
func (uc *TaskUseCase) Create(ctx context.Context, userID, leadID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := ensureLead(ctx, uc.leads, leadID); err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.TaskPriorityMedium
	}
	now := uc.now()
	t := &entity.Task{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    priority,
		Status:      entity.TaskStatusPending,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != "" {
		t.SetStatus(in.Status, now)
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTaskResponse(t), nil
}

// ListByLead devuelve las tareas del lead ordenadas por vencimiento.
func (uc *TaskUseCase) ListByLead(ctx context.Context, leadID string) ([]dto.TaskResponse, error) {
	if err := ensureLead(ctx, uc.leads, leadID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTaskResponse(t))
	}
	return out, nil
}

// Update edita una tarea manteniendo completed_at coherente con el estado.
func (uc *TaskUseCase) Update(ctx context.Context, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	now := uc.now()
	if in.Title != nil {
		t.Title = trimPtr(in.Title)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.Status != nil {
		t.SetStatus(*in.Status, now)
	}
	t.UpdatedAt = now
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTaskResponse(t), nil
}

// Complete marca la tarea como completada. (nil, nil) si no existe.
func (uc *TaskUseCase) Complete(ctx context.Context, id string) (*dto.TaskResponse, error) {
	status := entity.TaskStatusCompleted
	return uc.Update(ctx, id, dto.UpdateTaskRequest{Status: &status})
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          t.ID,
		LeadID:      t.LeadID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
