package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// OrderPDFUseCase genera el comprobante PDF de un pedido.
type OrderPDFUseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	generator OrderPDFGenerator
}

// NewOrderPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewOrderPDFUseCase(orders repository.OrderRepository, customers repository.CustomerRepository, generator OrderPDFGenerator) *OrderPDFUseCase {
	return &OrderPDFUseCase{orders: orders, customers: customers, generator: generator}
}

// Download devuelve (pdfBytes, filename). domain.ErrNotFound si el pedido no existe.
func (uc *OrderPDFUseCase) Download(ctx context.Context, orderID string) ([]byte, string, error) {
	// ── 1. Pedido y líneas ──
	order, err := loadOrder(ctx, uc.orders, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cliente (con totales) ──
	customer, err := uc.customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", fmt.Errorf("pdf: cliente %s del pedido %s: %w", order.CustomerID, order.Number, domain.ErrNotFound)
	}

	// ── 3. Generar ──
	pdfBytes, err := uc.generator.GenerateOrderPDF(ctx, order, customer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido_%s.pdf", order.Number), nil
}
