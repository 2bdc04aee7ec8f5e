package persistence

import (
	"context"
	"time"

	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RetryPolicy bounds how often a conflicting transaction is re-run
type RetryPolicy struct {
	MaxRetries int           // attempts after the first
	Backoff    time.Duration // base delay, doubled per attempt
}

// DefaultRetryPolicy returns the policy used when none is configured
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, Backoff: 10 * time.Millisecond}
}

// GormTransactionScope implements TransactionScope using GORM transactions.
// A unit of work that fails with a version conflict, serialization failure
// or deadlock is rolled back and run again under RetryPolicy.
type GormTransactionScope struct {
	db      *gorm.DB
	policy  RetryPolicy
	logger  *zap.Logger
	retries *telemetry.Counter
}

// TransactionScopeOption configures a GormTransactionScope
type TransactionScopeOption func(*GormTransactionScope)

// WithRetryPolicy overrides the retry policy
func WithRetryPolicy(policy RetryPolicy) TransactionScopeOption {
	return func(s *GormTransactionScope) {
		s.policy = policy
	}
}

// WithTransactionLogger sets the logger used to report retries
func WithTransactionLogger(logger *zap.Logger) TransactionScopeOption {
	return func(s *GormTransactionScope) {
		s.logger = logger
	}
}

// WithRetryCounter counts every retry on c
func WithRetryCounter(c *telemetry.Counter) TransactionScopeOption {
	return func(s *GormTransactionScope) {
		s.retries = c
	}
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB, opts ...TransactionScopeOption) *GormTransactionScope {
	s := &GormTransactionScope{
		db:     db,
		policy: DefaultRetryPolicy(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs fn within a database transaction, retrying on conflicts.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&gormTransactionalRepositories{tx: tx})
		})
		if err == nil || !IsRetryable(err) || attempt >= s.policy.MaxRetries {
			return err
		}

		delay := s.policy.Backoff << attempt
		if s.retries != nil {
			s.retries.Inc(ctx)
		}
		s.logger.Warn("retrying inventory transaction",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// gormTransactionalRepositories provides the ledger repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Locations returns the location repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Locations() inventory.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

// Items returns the inventory item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Items() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

// Movements returns the ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
