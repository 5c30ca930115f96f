package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// NoteRepository puerto de persistencia para Note.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	GetByID(ctx context.Context, id string) (*entity.Note, error)
	ListByLead(ctx context.Context, leadID string) ([]*entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id string) error
}
