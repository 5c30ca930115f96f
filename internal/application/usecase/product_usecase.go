package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/validate"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para el catálogo. El stock lo descuentan los pedidos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. Active por defecto es true.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	errs, err := fieldErrors(in)
	if err != nil {
		return nil, err
	}
	checkPrice(errs, in.Price)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := entity.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		UserID:      userID,
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Brand:       strings.TrimSpace(in.Brand),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price.Round(2),
		Stock:       in.Stock,
		Images:      copyStrings(in.Images),
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// Update actualiza un producto (parcial).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	errs, err := fieldErrors(in)
	if err != nil {
		return nil, err
	}
	if in.Price != nil {
		checkPrice(errs, *in.Price)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.SKU != nil {
		p.SKU = trimPtr(in.SKU)
	}
	if in.Name != nil {
		p.Name = trimPtr(in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Brand != nil {
		p.Brand = trimPtr(in.Brand)
	}
	if in.Category != nil {
		p.Category = trimPtr(in.Category)
	}
	if in.Price != nil {
		p.Price = in.Price.Round(2)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Images != nil {
		p.Images = copyStrings(in.Images)
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = entity.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List busca productos; active acepta "", "true" o "false".
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	f := repository.ProductFilter{ListFilter: listFilter(in.PageRequest)}
	if a := strings.TrimSpace(in.Active); a != "" {
		v, err := strconv.ParseBool(a)
		if err != nil {
			return nil, validate.Errors{"active": "debe ser true o false"}
		}
		f.Active = &v
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: pageOf(in.PageRequest, len(items))}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func checkPrice(errs validate.Errors, price decimal.Decimal) {
	if price.IsNegative() {
		errs.Add("price", "debe ser mayor o igual a 0")
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		Images:      images,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
