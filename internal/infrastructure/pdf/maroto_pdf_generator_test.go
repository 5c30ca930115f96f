package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/sales"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/pkg/format"
)

var _ sales.OrderPDFGenerator = (*MarotoPDFGenerator)(nil)

func TestGenerateOrderPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Tienda Demo", format.New("COP", "es"))
	order := &entity.Order{
		ID: "o-1", Number: "ORD-20261016-ABCDEF12",
		Status: entity.OrderStatusShipped, PaymentStatus: entity.PaymentStatusPaid,
		TotalAmount: decimal.RequireFromString("115000"),
		Notes:       "Entregar en portería",
		CreatedAt:   time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC),
		Items: []*entity.OrderItem{
			{ProductName: "Camiseta", Quantity: 2, UnitPrice: decimal.NewFromInt(45000), LineTotal: decimal.NewFromInt(90000)},
			{ProductName: "Gorra", Quantity: 1, UnitPrice: decimal.NewFromInt(25000), LineTotal: decimal.NewFromInt(25000)},
		},
	}
	customer := &entity.Customer{Name: "Carlos Gómez", Email: "carlos@example.com", City: "Cali"}

	data, err := g.GenerateOrderPDF(context.Background(), order, customer)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateOrderPDF_SinLineasNiNotas(t *testing.T) {
	g := NewMarotoPDFGenerator("Tienda Demo", nil)
	data, err := g.GenerateOrderPDF(context.Background(),
		&entity.Order{Number: "ORD-20261016-00000000", Status: "pending", PaymentStatus: "pending"},
		&entity.Customer{Name: "Sin datos"})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestLabelOr(t *testing.T) {
	assert.Equal(t, "Enviado", labelOr(orderStatusLabels, entity.OrderStatusShipped))
	assert.Equal(t, "otro", labelOr(orderStatusLabels, "otro"))
	assert.Equal(t, "—", nonEmpty("", "—"))
}
