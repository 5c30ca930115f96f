package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics agregado de pedidos (no cancelados) en un rango.
type SalesMetrics struct {
	Revenue    decimal.Decimal
	OrderCount int
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	// GetSalesMetrics suma pedidos no cancelados creados en [start, end].
	GetSalesMetrics(ctx context.Context, start, end time.Time) (SalesMetrics, error)
	// GetCustomerSpend devuelve el gasto acumulado de cada cliente (para contar por segmento).
	GetCustomerSpend(ctx context.Context) ([]decimal.Decimal, error)
	// CountLeadsByStatus agrupa leads por etapa.
	CountLeadsByStatus(ctx context.Context) (map[string]int, error)
}
