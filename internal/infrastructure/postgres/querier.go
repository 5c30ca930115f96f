package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/crm-api/pkg/metrics"
)

// Querier lo implementan *pgxpool.Pool y pgx.Tx; los repos lo reciben para
// funcionar igual fuera y dentro de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// observe registra la latencia de una consulta: defer observe("insert", "customers")().
func observe(operation, table string) func() {
	start := time.Now()
	return func() {
		metrics.RecordDBQueryDuration(operation, table, time.Since(start))
	}
}
