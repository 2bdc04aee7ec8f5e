package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultRecentMovementsWindow is the trailing window counted as recent movements
const DefaultRecentMovementsWindow = 7 * 24 * time.Hour

// StatsReader computes store aggregates straight from the database without
// taking write locks.
type StatsReader interface {
	StoreStats(ctx context.Context, storeID uuid.UUID, recentSince time.Time) (*StoreStats, error)
}

// StatsService serves the low-stock monitor's store summary. Figures are a
// point-in-time snapshot recomputed on every call.
type StatsService struct {
	reader       StatsReader
	recentWindow time.Duration
	now          func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(reader StatsReader, recentWindow time.Duration) *StatsService {
	if recentWindow <= 0 {
		recentWindow = DefaultRecentMovementsWindow
	}
	return &StatsService{
		reader:       reader,
		recentWindow: recentWindow,
		now:          time.Now,
	}
}

// GetStats returns totals, valuation and stock status counts for a store
func (s *StatsService) GetStats(ctx context.Context, storeID uuid.UUID) (*StoreStats, error) {
	return s.reader.StoreStats(ctx, storeID, s.now().UTC().Add(-s.recentWindow))
}
