package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/logger"
	"github.com/jhoicas/crm-api/pkg/metrics"
	"github.com/jhoicas/crm-api/pkg/validate"
	"github.com/shopspring/decimal"
)

// CreateOrderUseCase registra un pedido con sus líneas y descuenta stock en una sola transacción.
type CreateOrderUseCase struct {
	customers repository.CustomerRepository
	tx        TxRunner
	idem      IdempotencyStore
	log       *logger.Logger
	now       func() time.Time
}

// NewCreateOrderUseCase construye el caso de uso. idem puede ser nil (sin idempotencia).
func NewCreateOrderUseCase(customers repository.CustomerRepository, tx TxRunner, idem IdempotencyStore, log *logger.Logger) *CreateOrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateOrderUseCase{customers: customers, tx: tx, idem: idem, log: log, now: entity.Now}
}

// Execute crea el pedido.
//
// Si idempotencyKey no está vacío y ya se usó, devuelve domain.ErrIdempotentReplay.
// Si falta stock de alguna línea no se escribe nada (ErrInsufficientStock).
// Un precio unitario cero toma el precio vigente del producto.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, userID, idempotencyKey string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	errs := validate.Errors{}
	for i, it := range in.Items {
		if it.UnitPrice.IsNegative() {
			errs.Add(fmt.Sprintf("items[%d].unit_price", i), "debe ser mayor o igual a 0")
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, validate.Errors{"customer_id": "cliente no encontrado"}
	}

	key := ""
	if k := strings.TrimSpace(idempotencyKey); k != "" && uc.idem != nil {
		key = "idem:orders:" + userID + ":" + k
		ok, err := uc.idem.Acquire(ctx, key)
		switch {
		case err != nil:
			// Sin Redis no se bloquea la venta.
			uc.log.Warn().Err(err).Str("key", key).Msg("idempotencia no disponible, se continúa")
			key = ""
		case !ok:
			metrics.IncOrderCreated("replay")
			return nil, domain.ErrIdempotentReplay
		}
	}

	order, err := uc.create(ctx, userID, in)
	if err != nil {
		if key != "" {
			if rerr := uc.idem.Release(ctx, key); rerr != nil {
				uc.log.Warn().Err(rerr).Str("key", key).Msg("no se pudo liberar la clave de idempotencia")
			}
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.IncOrderCreated("insufficient_stock")
		} else {
			metrics.IncOrderCreated("error")
		}
		return nil, err
	}
	metrics.IncOrderCreated("created")
	return ToOrderResponse(order), nil
}

func (uc *CreateOrderUseCase) create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*entity.Order, error) {
	now := uc.now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		CustomerID:    in.CustomerID,
		Number:        orderNumber(now),
		Status:        orDefault(in.Status, entity.OrderStatusPending),
		PaymentStatus: orDefault(in.PaymentStatus, entity.PaymentStatusPending),
		TotalAmount:   decimal.Zero,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.tx.RunSales(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) error {
		// ── Líneas: precio, total y stock ──
		items := make([]*entity.OrderItem, 0, len(in.Items))
		for i, line := range in.Items {
			field := fmt.Sprintf("items[%d].product_id", i)
			p, err := productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return validate.Errors{field: "producto no encontrado"}
			}
			if !p.Active {
				return validate.Errors{field: "producto inactivo"}
			}
			if err := productRepo.AdjustStock(ctx, p.ID, -line.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return fmt.Errorf("%w: %s (disponible %d, pedido %d)", domain.ErrInsufficientStock, p.Name, p.Stock, line.Quantity)
				}
				return err
			}
			price := line.UnitPrice
			if price.IsZero() {
				price = p.Price
			}
			price = price.Round(2)
			lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
			items = append(items, &entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				UnitPrice:   price,
				LineTotal:   lineTotal,
			})
			order.TotalAmount = order.TotalAmount.Add(lineTotal)
		}

		// ── Cabecera y detalle ──
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, it := range items {
			if err := orderRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// orderNumber formato ORD-AAAAMMDD-XXXXXXXX.
func orderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return "ORD-" + t.Format("20060102") + "-" + suffix
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ToOrderResponse mapea el pedido con sus líneas (si están cargadas).
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		Number:        o.Number,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
