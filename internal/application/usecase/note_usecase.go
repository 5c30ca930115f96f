package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/validate"
)

// NoteUseCase notas de un lead. El autor visible se toma del usuario autenticado.
type NoteUseCase struct {
	repo  repository.NoteRepository
	leads repository.LeadRepository
	users repository.UserRepository
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(repo repository.NoteRepository, leads repository.LeadRepository, users repository.UserRepository) *NoteUseCase {
	return &NoteUseCase{repo: repo, leads: leads, users: users}
}

// Create agrega una nota al lead.
func (uc *NoteUseCase) Create(ctx context.Context, userID, leadID string, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := ensureLead(ctx, uc.leads, leadID); err != nil {
		return nil, err
	}
	author, err := uc.authorName(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := entity.Now()
	n := &entity.Note{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		AuthorID:  userID,
		Author:    author,
		Content:   in.Content,
		IsPrivate: in.IsPrivate,
		MediaURLs: copyStrings(in.MediaURLs),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return toNoteResponse(n), nil
}

// ListByLead devuelve las notas visibles para userID: las privadas solo para su autor.
func (uc *NoteUseCase) ListByLead(ctx context.Context, userID, leadID string) ([]dto.NoteResponse, error) {
	if err := ensureLead(ctx, uc.leads, leadID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoteResponse, 0, len(list))
	for _, n := range list {
		if n.IsPrivate && n.AuthorID != userID {
			continue
		}
		out = append(out, *toNoteResponse(n))
	}
	return out, nil
}

// Update edita una nota. (nil, nil) si no existe o es privada de otro usuario.
func (uc *NoteUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	n, err := uc.visible(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	if in.Content != nil {
		n.Content = *in.Content
	}
	if in.IsPrivate != nil {
		n.IsPrivate = *in.IsPrivate
	}
	if in.MediaURLs != nil {
		n.MediaURLs = copyStrings(in.MediaURLs)
	}
	n.UpdatedAt = entity.Now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNoteResponse(n), nil
}

// Delete elimina una nota. Las privadas solo las borra su autor.
func (uc *NoteUseCase) Delete(ctx context.Context, userID, id string) error {
	n, err := uc.visible(ctx, userID, id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// visible carga la nota si userID puede verla; nil si no existe o es privada de otro.
func (uc *NoteUseCase) visible(ctx context.Context, userID, id string) (*entity.Note, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil || n == nil {
		return nil, err
	}
	if n.IsPrivate && n.AuthorID != userID {
		return nil, nil
	}
	return n, nil
}

func (uc *NoteUseCase) authorName(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", nil
	}
	if u.Name != "" {
		return u.Name, nil
	}
	return u.Email, nil
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	media := n.MediaURLs
	if media == nil {
		media = []string{}
	}
	return &dto.NoteResponse{
		ID:        n.ID,
		LeadID:    n.LeadID,
		AuthorID:  n.AuthorID,
		Author:    n.Author,
		Content:   n.Content,
		IsPrivate: n.IsPrivate,
		MediaURLs: media,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
