package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/domain/segment"
	"github.com/jhoicas/crm-api/pkg/validate"
)

// CustomerUseCase CRUD y búsqueda de clientes. Los totales llegan agregados desde el repositorio.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create valida y persiste un cliente nuevo a nombre de userID.
func (uc *CustomerUseCase) Create(ctx context.Context, userID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	now := entity.Now()
	c := &entity.Customer{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      validate.NormalizePhone(in.Phone),
		Company:    strings.TrimSpace(in.Company),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
		PhotoURL:   strings.TrimSpace(in.PhotoURL),
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByID obtiene un cliente con sus totales. (nil, nil) si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toCustomerResponse(c), nil
}

// List busca clientes; segment se traduce a un rango de gasto.
func (uc *CustomerUseCase) List(ctx context.Context, in dto.CustomerListRequest) (*dto.CustomerListResponse, error) {
	f := repository.CustomerFilter{ListFilter: listFilter(in.PageRequest)}
	if s := strings.TrimSpace(in.Segment); s != "" {
		seg, ok := segment.Parse(s)
		if !ok {
			return nil, validate.Errors{"segment": "debe ser uno de: bronze silver gold vip"}
		}
		f.MinSpent, f.MaxSpent = segment.Range(seg)
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: pageOf(in.PageRequest, len(items))}, nil
}

// Update aplica una actualización parcial. (nil, nil) si no existe.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if in.Name != nil {
		c.Name = trimPtr(in.Name)
	}
	if in.Email != nil {
		c.Email = strings.ToLower(trimPtr(in.Email))
	}
	if in.Phone != nil {
		c.Phone = validate.NormalizePhone(*in.Phone)
	}
	if in.Company != nil {
		c.Company = trimPtr(in.Company)
	}
	if in.Address != nil {
		c.Address = trimPtr(in.Address)
	}
	if in.City != nil {
		c.City = trimPtr(in.City)
	}
	if in.State != nil {
		c.State = trimPtr(in.State)
	}
	if in.PostalCode != nil {
		c.PostalCode = trimPtr(in.PostalCode)
	}
	if in.Country != nil {
		c.Country = trimPtr(in.Country)
	}
	if in.PhotoURL != nil {
		c.PhotoURL = trimPtr(in.PhotoURL)
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	c.UpdatedAt = entity.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete elimina un cliente sin pedidos.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Company:     c.Company,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		PostalCode:  c.PostalCode,
		Country:     c.Country,
		FullAddress: c.FullAddress(),
		PhotoURL:    c.PhotoURL,
		Notes:       c.Notes,
		TotalSpent:  c.TotalSpent,
		TotalOrders: c.TotalOrders,
		Segment:     string(c.Segment()),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
