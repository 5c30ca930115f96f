package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics suma ingresos y cuenta pedidos no cancelados en [start, end].
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (repository.SalesMetrics, error) {
	defer observe("aggregate", "orders")()
	const query = `
	SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
	FROM orders
	WHERE status <> 'cancelled'
	  AND created_at BETWEEN $1 AND $2`

	var m repository.SalesMetrics
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&m.Revenue, &m.OrderCount); err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("sales metrics: %w", err)
	}
	return m, nil
}

// GetCustomerSpend devuelve el gasto acumulado de cada cliente (0 para los que no compraron).
func (r *AnalyticsRepo) GetCustomerSpend(ctx context.Context) ([]decimal.Decimal, error) {
	defer observe("aggregate", "customers")()
	const query = `
	SELECT COALESCE(SUM(o.total_amount) FILTER (WHERE o.status <> 'cancelled'), 0)
	FROM customers c
	LEFT JOIN orders o ON o.customer_id = c.id
	GROUP BY c.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("customer spend: %w", err)
	}
	defer rows.Close()
	out := make([]decimal.Decimal, 0)
	for rows.Next() {
		var v decimal.Decimal
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan customer spend: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CountLeadsByStatus agrupa leads por etapa.
func (r *AnalyticsRepo) CountLeadsByStatus(ctx context.Context) (map[string]int, error) {
	defer observe("aggregate", "wp_leads")()
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM wp_leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan lead count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
