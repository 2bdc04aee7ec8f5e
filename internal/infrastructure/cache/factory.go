package cache

import (
	"context"
	"fmt"

	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreOption configures NewIdempotencyStore
type StoreOption func(*storeOptions)

type storeOptions struct {
	allowFallback bool
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to
// the in-memory store. Fallback is allowed by default.
func WithInMemoryFallback(allow bool) StoreOption {
	return func(o *storeOptions) {
		o.allowFallback = allow
	}
}

// NewIdempotencyStore returns a Redis store when redis is enabled in cfg
// and an in-memory store otherwise.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger, opts ...StoreOption) (shared.IdempotencyStore, error) {
	o := storeOptions{allowFallback: true}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Enabled {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg)
	if err == nil {
		logger.Info("using redis idempotency store", zap.String("addr", cfg.Addr()))
		return store, nil
	}
	if !o.allowFallback {
		return nil, fmt.Errorf("redis idempotency store unavailable: %w", err)
	}

	logger.Warn("redis unavailable, idempotency keys are kept per instance", zap.Error(err))
	return NewInMemoryIdempotencyStore(), nil
}
