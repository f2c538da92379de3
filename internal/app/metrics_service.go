package app

import (
	"context"
	"time"

	"github.com/hyperitsme/axion-backend/internal/clock"
)

type OrderCounter interface {
	CountOrdersSince(ctx context.Context, since time.Time) (int, error)
	CountFinalizedSince(ctx context.Context, since time.Time) (int, error)
}

// MetricsService aggregates bridge activity over a sliding window.
type MetricsService struct {
	repo   OrderCounter
	clock  clock.Clock
	window time.Duration
}

func NewMetricsService(repo OrderCounter, clk clock.Clock) *MetricsService {
	return &MetricsService{
		repo:   repo,
		clock:  clk,
		window: 24 * time.Hour,
	}
}

type OverviewResult struct {
	Tx24h       int
	SuccessRate float64
	P50         int
	P95         int
	Alerts24h   int
}

// Overview reports transfer volume and finalization rate over the window.
// Latency percentiles are static placeholders until real settlement timing
// is recorded per order.
func (s *MetricsService) Overview(ctx context.Context) (OverviewResult, error) {
	since := s.clock.Now().Add(-s.window)

	total, err := s.repo.CountOrdersSince(ctx, since)
	if err != nil {
		return OverviewResult{}, err
	}
	finalized, err := s.repo.CountFinalizedSince(ctx, since)
	if err != nil {
		return OverviewResult{}, err
	}

	rate := 0.0
	if total > 0 {
		rate = float64(finalized) / float64(total)
	}

	return OverviewResult{
		Tx24h:       total,
		SuccessRate: rate,
		P50:         80,
		P95:         120,
		Alerts24h:   0,
	}, nil
}
