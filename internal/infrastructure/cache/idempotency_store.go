package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyTTL vigencia de una clave si no se configura otra.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore reserva claves de idempotencia con SET NX + TTL.
// Implementa sales.IdempotencyStore.
type IdempotencyStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewIdempotencyStore construye el store. ttl <= 0 usa DefaultIdempotencyTTL.
func NewIdempotencyStore(rdb redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Acquire devuelve true la primera vez que se ve key y false si ya estaba reservada.
// Un error de Redis se devuelve tal cual; el llamador decide si bloquear.
func (s *IdempotencyStore) Acquire(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, key, 1, s.ttl).Result()
}

// Release libera key para permitir reintentos tras un fallo.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
