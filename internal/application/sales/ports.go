// Package sales contiene los casos de uso de pedidos: alta transaccional con
// descuento de stock, consulta, edición de cabecera, borrado y comprobante PDF.
package sales

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repos de pedidos y productos en una misma transacción.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// IdempotencyStore reserva claves de idempotencia.
// Acquire devuelve false si la clave ya estaba tomada.
type IdempotencyStore interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// OrderPDFGenerator genera el comprobante PDF de un pedido (order.Items cargados).
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order, customer *entity.Customer) ([]byte, error)
}
