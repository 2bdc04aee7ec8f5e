package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys for a TTL. Keys are event ids on the bus
// side and actor-scoped Idempotency-Key headers on the HTTP side.
type IdempotencyStore interface {
	// MarkProcessed sets key and reports whether this call set it
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, key string) (bool, error)
	// Forget drops key so a failed request can be retried with it
	Forget(ctx context.Context, key string) error
	Close() error
}

// IdempotencyConfig configures duplicate suppression for event handlers
type IdempotencyConfig struct {
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig keeps keys for a day
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{TTL: 24 * time.Hour, Enabled: true}
}
