package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/pipeline"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/validate"
)

// LeadUseCase CRUD y búsqueda de leads. El estado se cambia con pipeline.StatusChangeUseCase.
type LeadUseCase struct {
	repo repository.LeadRepository
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(repo repository.LeadRepository) *LeadUseCase {
	return &LeadUseCase{repo: repo}
}

// Create registra un lead. Sin estado explícito entra en la primera etapa.
func (uc *LeadUseCase) Create(ctx context.Context, userID string, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = pipeline.StatusNew
	}
	now := entity.Now()
	l := &entity.Lead{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     validate.NormalizePhone(in.Phone),
		Source:    in.Source,
		Status:    status,
		Message:   in.Message,
		MediaURLs: copyStrings(in.MediaURLs),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return ToLeadResponse(l), nil
}

// GetByID obtiene un lead. (nil, nil) si no existe.
func (uc *LeadUseCase) GetByID(ctx context.Context, id string) (*dto.LeadResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, nil
	}
	return ToLeadResponse(l), nil
}

// List busca leads y filtra por etapa y canal.
func (uc *LeadUseCase) List(ctx context.Context, in dto.LeadListRequest) (*dto.LeadListResponse, error) {
	errs := validate.Errors{}
	status := strings.TrimSpace(in.Status)
	if status != "" && !pipeline.IsValid(status) {
		errs.Add("status", "etapa desconocida")
	}
	source := strings.TrimSpace(in.Source)
	if source != "" && !entity.IsValidLeadSource(source) {
		errs.Add("source", "canal desconocido")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.LeadFilter{
		ListFilter: listFilter(in.PageRequest),
		Status:     status,
		Source:     source,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *ToLeadResponse(l))
	}
	return &dto.LeadListResponse{Items: items, Page: pageOf(in.PageRequest, len(items))}, nil
}

// Update aplica cambios de contacto. (nil, nil) si no existe.
func (uc *LeadUseCase) Update(ctx context.Context, id string, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, nil
	}
	if in.Name != nil {
		l.Name = trimPtr(in.Name)
	}
	if in.Email != nil {
		l.Email = strings.ToLower(trimPtr(in.Email))
	}
	if in.Phone != nil {
		l.Phone = validate.NormalizePhone(*in.Phone)
	}
	if in.Source != nil {
		l.Source = *in.Source
	}
	if in.Message != nil {
		l.Message = *in.Message
	}
	if in.MediaURLs != nil {
		l.MediaURLs = copyStrings(in.MediaURLs)
	}
	l.UpdatedAt = entity.Now()
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return ToLeadResponse(l), nil
}

// Delete elimina el lead y su historial.
func (uc *LeadUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToLeadResponse mapea la entidad con la etiqueta de su etapa.
func ToLeadResponse(l *entity.Lead) *dto.LeadResponse {
	if l == nil {
		return nil
	}
	media := l.MediaURLs
	if media == nil {
		media = []string{}
	}
	return &dto.LeadResponse{
		ID:          l.ID,
		Name:        l.Name,
		Email:       l.Email,
		Phone:       l.Phone,
		Source:      l.Source,
		Status:      l.Status,
		StatusLabel: pipeline.LabelOf(l.Status),
		Message:     l.Message,
		MediaURLs:   media,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
