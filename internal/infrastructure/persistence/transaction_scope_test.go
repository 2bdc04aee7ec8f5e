package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fastRetries(maxRetries int) TransactionScopeOption {
	return WithRetryPolicy(RetryPolicy{MaxRetries: maxRetries, Backoff: time.Millisecond})
}

func TestGormTransactionScope_Commit(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	storeID := uuid.New()

	err := scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		loc := newTestLocation(t, storeID, "Main", "MAIN")
		if err := repos.Locations().Create(ctx, loc); err != nil {
			return err
		}
		_, err := repos.Items().GetOrCreate(ctx, storeID, loc.ID, inventory.ProductOf(uuid.New()))
		return err
	})
	require.NoError(t, err)

	count, err := NewGormLocationRepository(db).CountByStore(ctx, storeID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormTransactionScope_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	storeID := uuid.New()
	boom := errors.New("boom")

	err := scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if err := repos.Locations().Create(ctx, newTestLocation(t, storeID, "Main", "MAIN")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := NewGormLocationRepository(db).CountByStore(ctx, storeID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGormTransactionScope_Retry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries a conflict until it succeeds", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		scope := NewGormTransactionScope(newTestDB(t), fastRetries(3), WithTransactionLogger(zap.New(core)))

		attempts := 0
		err := scope.Execute(ctx, func(appinv.TransactionalRepositories) error {
			attempts++
			if attempts < 3 {
				return shared.ErrConcurrencyConflict
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, 2, logs.FilterMessage("retrying inventory transaction").Len())
	})

	t.Run("counts each retry", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := telemetry.NewMeterProviderWithReader(reader)
		t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
		retries, err := telemetry.NewCounter(mp.Meter("test"), "inventory.tx_retries", "retries", "{retry}")
		require.NoError(t, err)

		scope := NewGormTransactionScope(newTestDB(t), fastRetries(5), WithRetryCounter(retries))
		attempts := 0
		err = scope.Execute(ctx, func(appinv.TransactionalRepositories) error {
			attempts++
			if attempts < 4 {
				return shared.ErrConcurrencyConflict
			}
			return nil
		})
		require.NoError(t, err)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))
		require.Len(t, rm.ScopeMetrics, 1)
		require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
		sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, int64(3), sum.DataPoints[0].Value)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		scope := NewGormTransactionScope(newTestDB(t), fastRetries(2))

		attempts := 0
		err := scope.Execute(ctx, func(appinv.TransactionalRepositories) error {
			attempts++
			return shared.ErrConcurrencyConflict
		})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 3, attempts)
	})

	t.Run("retries serialization failures", func(t *testing.T) {
		scope := NewGormTransactionScope(newTestDB(t), fastRetries(1))

		attempts := 0
		err := scope.Execute(ctx, func(appinv.TransactionalRepositories) error {
			attempts++
			if attempts == 1 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("does not retry domain errors", func(t *testing.T) {
		scope := NewGormTransactionScope(newTestDB(t), fastRetries(3))

		attempts := 0
		err := scope.Execute(ctx, func(appinv.TransactionalRepositories) error {
			attempts++
			return inventory.ErrNegativeStock
		})
		assert.ErrorIs(t, err, inventory.ErrNegativeStock)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		scope := NewGormTransactionScope(newTestDB(t),
			WithRetryPolicy(RetryPolicy{MaxRetries: 5, Backoff: time.Hour}))

		cancelCtx, cancel := context.WithCancel(ctx)
		attempts := 0
		err := scope.Execute(cancelCtx, func(appinv.TransactionalRepositories) error {
			attempts++
			cancel()
			return shared.ErrConcurrencyConflict
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"version conflict", shared.ErrConcurrencyConflict, true},
		{"wrapped conflict", shared.ErrConcurrencyConflict.WithMessage("Item changed"), true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"not found", shared.ErrNotFound, false},
		{"plain error", errors.New("x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRetryable(tt.err))
		})
	}
}
