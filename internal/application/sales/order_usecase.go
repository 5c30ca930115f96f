package sales

import (
	"context"
	"strings"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/validate"
)

// OrderUseCase consulta, edición de cabecera y borrado de pedidos.
type OrderUseCase struct {
	orders repository.OrderRepository
	tx     TxRunner
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, tx TxRunner) *OrderUseCase {
	return &OrderUseCase{orders: orders, tx: tx}
}

// GetByID obtiene el pedido con sus líneas. (nil, nil) si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := loadOrder(ctx, uc.orders, id)
	if err != nil || o == nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// List lista pedidos (sin líneas), filtrando por cliente y estado.
func (uc *OrderUseCase) List(ctx context.Context, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	status := strings.TrimSpace(in.Status)
	if status != "" && !entity.IsValidOrderStatus(status) {
		return nil, validate.Errors{"status": "debe ser uno de: pending processing shipped delivered cancelled"}
	}
	page := in.PageRequest
	page.DefaultPage()
	list, err := uc.orders.List(ctx, repository.OrderFilter{
		CustomerID: strings.TrimSpace(in.CustomerID),
		Status:     status,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page: dto.PageResponse{
			Limit:      page.Limit,
			Offset:     page.Offset,
			Count:      len(items),
			Generation: page.Generation,
		},
	}, nil
}

// Update cambia estado, estado de pago o notas. Las líneas y el stock no se modifican.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	if in.Status != nil {
		o.Status = *in.Status
	}
	if in.PaymentStatus != nil {
		o.PaymentStatus = *in.PaymentStatus
	}
	if in.Notes != nil {
		o.Notes = *in.Notes
	}
	o.UpdatedAt = entity.Now()
	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	items, err := uc.orders.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return ToOrderResponse(o), nil
}

// Delete elimina el pedido y devuelve al stock las cantidades de sus líneas, en una transacción.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.RunSales(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) error {
		o, err := orderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		items, err := orderRepo.ListItems(ctx, id)
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := productRepo.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return orderRepo.Delete(ctx, id)
	})
}

func loadOrder(ctx context.Context, orders repository.OrderRepository, id string) (*entity.Order, error) {
	o, err := orders.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	items, err := orders.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}
